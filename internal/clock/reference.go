package clock

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// ReferenceLST returns the local mean sidereal time in decimal hours from the
// IAU GMST polynomial. It is only used to report how far the linear
// approximation in UTCToLST has drifted.
func ReferenceLST(utc time.Time, longitude float64) float64 {
	utc = utc.UTC()
	jd := satellite.JDay(utc.Year(), int(utc.Month()), utc.Day(), utc.Hour(), utc.Minute(), utc.Second())
	gmst := satellite.ThetaG_JD(jd) // radians
	hours := gmst/(2*math.Pi)*24 + LongitudeOffset(longitude)
	return wrapHours(hours)
}

// Drift returns approximate minus reference LST in minutes, in [-720, 720)
func Drift(utc time.Time, longitude float64) float64 {
	approx := UTCToLST(utc, longitude).Hours()
	diff := approx - ReferenceLST(utc, longitude)
	return wrapSigned(diff, 24) * 60
}

func wrapHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// wrapSigned maps v into [-period/2, period/2)
func wrapSigned(v, period float64) float64 {
	v = math.Mod(v+period/2, period)
	if v < 0 {
		v += period
	}
	return v - period/2
}
