package projector

import (
	"fmt"
	"math"

	"github.com/mmcdole/skychart/internal/domain"
)

// RingKind distinguishes the circles drawn on the chart
type RingKind int

const (
	RingElevation  RingKind = iota // Grey 15° elevation grid
	RingLowerLimit                 // Minimum usable elevation
	RingUpperLimit                 // Maximum usable elevation
	RingPath                       // Diurnal path of a source
)

// Circle is a ring on the chart plane
type Circle struct {
	Center domain.ChartPosition
	Radius float64
	Dashed bool
	Kind   RingKind
}

// Segment is a straight line on the chart plane
type Segment struct {
	From domain.ChartPosition
	To   domain.ChartPosition
}

// Label is text anchored at a chart-plane point
type Label struct {
	At   domain.ChartPosition
	Text string
}

// Furniture is the static part of the chart: grid, limits and cardinals
type Furniture struct {
	Rings     []Circle
	Spokes    []Segment
	Labels    []Label
	Cardinals []Label
}

const (
	elevationStep = 15 // Degrees between grid rings
	gridRings     = 6
	spokeCount    = 12
	cardinalGap   = 10 // Pixels outside the horizon ring
	labelNudge    = 8  // Pixels below the ring crossing
)

// ChartFurniture builds the grid for an observer
func ChartFurniture(obs domain.ObserverConfig) Furniture {
	scale := obs.DegreeScaling
	var f Furniture

	for i := 0; i < gridRings; i++ {
		f.Rings = append(f.Rings, Circle{
			Radius: float64(90-elevationStep*i) * scale,
			Kind:   RingElevation,
		})
		elevation := 90 - elevationStep*(i+1)
		f.Labels = append(f.Labels, Label{
			At:   domain.ChartPosition{Y: -float64(elevationStep*(i+1))*scale + labelNudge},
			Text: fmt.Sprintf("%d°", elevation),
		})
	}

	f.Rings = append(f.Rings,
		Circle{Radius: (90 - obs.ElevationMin) * scale, Kind: RingLowerLimit},
		Circle{Radius: (90 - obs.ElevationMax) * scale, Kind: RingUpperLimit, Dashed: true},
	)

	horizon := 90 * scale
	for i := 0; i < spokeCount; i++ {
		a := float64(i) * 2 * math.Pi / spokeCount
		f.Spokes = append(f.Spokes, Segment{
			To: domain.ChartPosition{X: math.Cos(a) * horizon, Y: math.Sin(a) * horizon},
		})
	}

	edge := horizon + cardinalGap
	f.Cardinals = []Label{
		{At: domain.ChartPosition{Y: -edge}, Text: "N"},
		{At: domain.ChartPosition{Y: edge}, Text: "S"},
		{At: domain.ChartPosition{X: -edge}, Text: "E"},
		{At: domain.ChartPosition{X: edge}, Text: "W"},
	}
	return f
}

// Path is the diurnal circle a source traces around the pole
func Path(s domain.Source, obs domain.ObserverConfig) Circle {
	return Circle{
		Center: domain.ChartPosition{Y: PoleOffsetY(obs)},
		Radius: Radius(s.Declination, obs.DegreeScaling),
		Dashed: true,
		Kind:   RingPath,
	}
}

// LabelOffset is the distance below a marker at which its name is drawn
const LabelOffset = 15
