// Package clock converts between local civil time, UTC and an approximate
// Local Sidereal Time. All functions are pure and safe for concurrent use.
package clock

import (
	"fmt"
	"math"
	"time"

	"github.com/mmcdole/skychart/internal/domain"
)

// DisplayLayout is the canonical civil time display and entry format
const DisplayLayout = "2006-01-02 15:04"

// SiderealLayout renders the time-of-day of a sidereal time
const SiderealLayout = "15:04"

// VernalEquinox is the reference vernal equinox instant (UTC)
var VernalEquinox = time.Date(2025, time.March, 20, 9, 1, 0, 0, time.UTC)

// LSTFix absorbs the equation of time and unmodelled error, in hours
const LSTFix = -7.3 / 60

// tropicalYear approximates the period in which sidereal time gains one day
const tropicalYear = 365 * 24 * time.Hour

// SiderealTime is a sidereal time-of-day. The carried calendar date has no
// meaning; only the clock fields are significant and they wrap at 24h.
type SiderealTime struct {
	t time.Time
}

// Hour returns the sidereal hour in [0, 24)
func (s SiderealTime) Hour() int { return s.t.Hour() }

// Minute returns the sidereal minute
func (s SiderealTime) Minute() int { return s.t.Minute() }

// Second returns the whole sidereal second
func (s SiderealTime) Second() int { return s.t.Second() }

// Hours returns the sidereal time as decimal hours at whole-second resolution
func (s SiderealTime) Hours() float64 {
	return float64(s.Hour()) + float64(s.Minute())/60 + float64(s.Second())/3600
}

// String renders HH:MM
func (s SiderealTime) String() string { return s.t.Format(SiderealLayout) }

// Calendar renders the full calendar-time structure as YYYY-MM-DD HH:MM
func (s SiderealTime) Calendar() string { return s.t.Format(DisplayLayout) }

// SiderealFromHours builds a sidereal time from decimal hours, wrapping into [0, 24)
func SiderealFromHours(hours float64) SiderealTime {
	d := time.Duration(hours * float64(time.Hour)).Truncate(time.Second)
	return SiderealTime{t: time.Unix(0, 0).UTC().Add(d % (24 * time.Hour)).Add(24 * time.Hour)}
}

// ToUTC converts a civil time in any zone to UTC
func ToUTC(local time.Time) time.Time {
	return local.UTC()
}

// EquinoxOffset returns the sidereal offset in hours accumulated since the
// reference equinox: 12h at the equinox plus 24h per (365 day) year.
func EquinoxOffset(utc time.Time) float64 {
	elapsed := utc.Sub(VernalEquinox)
	return 12 + elapsed.Seconds()/tropicalYear.Seconds()*24
}

// LongitudeOffset converts an east-positive longitude to hours
func LongitudeOffset(longitude float64) float64 {
	return longitude / 360 * 24
}

// UTCToLST converts a UTC instant to the approximate local sidereal time at
// the given longitude.
func UTCToLST(utc time.Time, longitude float64) SiderealTime {
	utc = utc.UTC()
	offset := EquinoxOffset(utc) + LongitudeOffset(longitude) + LSTFix
	// Round to the millisecond first so float noise cannot lose a whole second
	shift := time.Duration(math.Round(offset*3600*1e3)) * time.Millisecond
	shifted := utc.Add(shift).Truncate(time.Second)
	return SiderealTime{t: shifted}
}

// LocalToLST converts a local civil time to LST for the observer
func LocalToLST(local time.Time, obs domain.ObserverConfig) SiderealTime {
	return UTCToLST(ToUTC(local), obs.Longitude)
}

// FormatCivil renders a civil time as YYYY-MM-DD HH:MM in its own zone
func FormatCivil(t time.Time) string {
	return t.Format(DisplayLayout)
}

// ParseLocal parses YYYY-MM-DD HH:MM in loc. A nil loc means time.Local.
func ParseLocal(text string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DisplayLayout, text, loc)
	if err != nil {
		return time.Time{}, &domain.ParseError{Input: text, Err: err}
	}
	return t, nil
}

// Times bundles the three display strings for one instant
type Times struct {
	Local string
	UTC   string
	LST   string
}

// DisplayTimes formats local, UTC and LST for the observer
func DisplayTimes(local time.Time, obs domain.ObserverConfig) Times {
	return Times{
		Local: FormatCivil(local),
		UTC:   FormatCivil(ToUTC(local)),
		LST:   LocalToLST(local, obs).String(),
	}
}

// String renders the times on one line
func (t Times) String() string {
	return fmt.Sprintf("LOCAL %s  UTC %s  LST %s", t.Local, t.UTC, t.LST)
}
