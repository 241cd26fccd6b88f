// Package projector maps equatorial coordinates onto the 2-D chart plane.
//
// The chart is an hour-angle polar projection centered on the elevated pole:
// declination maps linearly to radius and the hour angle maps to the polar
// angle, with the whole pattern shifted vertically by a fixed pole offset.
// It is not an alt-az transform.
package projector

import (
	"math"

	"github.com/mmcdole/skychart/internal/clock"
	"github.com/mmcdole/skychart/internal/domain"
)

// PoleOffsetY is the chart-plane y of the celestial pole: -(90-lat)*scale
func PoleOffsetY(obs domain.ObserverConfig) float64 {
	return -(90 - obs.Latitude) * obs.DegreeScaling
}

// Radius is the projected distance of a declination from the pole
func Radius(declination, scale float64) float64 {
	return (90 - declination) * scale
}

// CulminationRatio is the signed fraction of a sidereal day between the
// source's right ascension and the current LST, roughly in (-1, 1).
func CulminationRatio(rightAscension, lstHours float64) float64 {
	return (rightAscension - lstHours) / 24
}

// Project returns the chart-plane position of one source
func Project(rightAscension, declination, lstHours float64, obs domain.ObserverConfig) domain.ChartPosition {
	angle := CulminationRatio(rightAscension, lstHours) * 2 * math.Pi
	r := Radius(declination, obs.DegreeScaling)

	return domain.ChartPosition{
		X: -math.Sin(angle) * r,
		Y: PoleOffsetY(obs) + math.Cos(angle)*r,
	}
}

// ProjectSource projects a source at a sidereal time
func ProjectSource(s domain.Source, lst clock.SiderealTime, obs domain.ObserverConfig) domain.ChartPosition {
	return Project(s.RightAscension, s.Declination, lst.Hours(), obs)
}

// ProjectAll projects every source against one LST value
func ProjectAll(sources []domain.Source, lst clock.SiderealTime, obs domain.ObserverConfig) []domain.SourcePosition {
	lstHours := lst.Hours()
	out := make([]domain.SourcePosition, len(sources))
	for i, s := range sources {
		out[i] = domain.SourcePosition{
			Index:    i,
			Source:   s,
			Position: Project(s.RightAscension, s.Declination, lstHours, obs),
		}
	}
	return out
}
