package clock

import (
	"time"

	"github.com/mmcdole/skychart/internal/domain"
	"github.com/nathan-osman/go-sunrise"
)

// Daylight holds sunrise and sunset for one civil date at the observer
type Daylight struct {
	Sunrise time.Time
	Sunset  time.Time
}

// HasSun reports false during polar day or night, when the sun neither rises nor sets
func (d Daylight) HasSun() bool {
	return !d.Sunrise.IsZero() && !d.Sunset.IsZero()
}

// String renders "rise HH:MM set HH:MM" in the zone of the times
func (d Daylight) String() string {
	if !d.HasSun() {
		return "no sunrise/sunset"
	}
	return "rise " + d.Sunrise.Format(SiderealLayout) + " set " + d.Sunset.Format(SiderealLayout)
}

// DaylightFor returns sunrise and sunset on local's civil date, expressed in local's zone
func DaylightFor(local time.Time, obs domain.ObserverConfig) Daylight {
	longitude := obs.Longitude
	if longitude > 180 {
		longitude -= 360
	}
	rise, set := sunrise.SunriseSunset(obs.Latitude, longitude, local.Year(), local.Month(), local.Day())
	d := Daylight{}
	if !rise.IsZero() {
		d.Sunrise = rise.In(local.Location())
	}
	if !set.IsZero() {
		d.Sunset = set.In(local.Location())
	}
	return d
}
