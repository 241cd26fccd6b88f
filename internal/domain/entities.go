package domain

import "fmt"

// ObserverConfig describes the observing site and chart geometry.
// Loaded once at startup and never mutated.
type ObserverConfig struct {
	Latitude      float64 `validate:"gte=-90,lte=90"`                    // Degrees, north positive
	Longitude     float64 `validate:"gte=-180,lte=360"`                  // Degrees, east positive
	ElevationMin  float64 `validate:"gte=0,lte=90,ltfield=ElevationMax"` // Inner bound of the visibility band
	ElevationMax  float64 `validate:"gte=0,lte=90"`                      // Outer bound of the visibility band
	WindowWidth   int     `validate:"gt=0"`                              // Chart plane width in pixels
	WindowHeight  int     `validate:"gt=0"`                              // Chart plane height in pixels
	DegreeScaling float64 `validate:"gt=0"`                              // Pixels per degree of elevation
}

// Coordinates returns the display line printed at startup
func (o ObserverConfig) Coordinates() string {
	return fmt.Sprintf("Coordinates: %.3f° N, %.3f° E", o.Latitude, o.Longitude)
}

// SourceType is a marker style. Its position in the type list is its ID.
type SourceType struct {
	MarkerDiameter int    `validate:"gt=0"`     // Pixels
	FillColor      string `validate:"required"` // Any color the renderer accepts, usually #RRGGBB
}

// Source is a fixed celestial target shown on the chart
type Source struct {
	Name           string  `validate:"required"`
	RightAscension float64 `validate:"gte=0,lt=24"`    // Decimal hours
	Declination    float64 `validate:"gte=-90,lte=90"` // Decimal degrees
	TypeIndex      int     `validate:"gte=0"`          // Index into the type list
	Visible        bool    // Whether path and label are drawn
}

// Catalog is the ordered type list plus the ordered source list.
// Order is preserved across load and save.
type Catalog struct {
	Types   []SourceType
	Sources []Source
}

// Type returns the marker style for a source, falling back to the first type
// when the index is out of range.
func (c Catalog) Type(s Source) SourceType {
	if s.TypeIndex >= 0 && s.TypeIndex < len(c.Types) {
		return c.Types[s.TypeIndex]
	}
	if len(c.Types) > 0 {
		return c.Types[0]
	}
	return SourceType{MarkerDiameter: 1, FillColor: "#FFFFFF"}
}

// MaxTypeIndex is the upper bound for a source's type selector
func (c Catalog) MaxTypeIndex() int {
	return len(c.Types) - 1
}

// ChartPosition is a point on the chart plane in pixels.
// The origin is the chart center (zenith); y grows downward.
type ChartPosition struct {
	X float64
	Y float64
}

// SourcePosition pairs a projected position with the source it belongs to
type SourcePosition struct {
	Index    int // Index into Catalog.Sources
	Source   Source
	Position ChartPosition
}
