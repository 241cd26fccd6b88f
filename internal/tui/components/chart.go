package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/mmcdole/skychart/internal/projector"
	"github.com/mmcdole/skychart/internal/tui/styles"
)

// Chart glyphs
const (
	gridRune     = '·'
	spokeRune    = '·'
	limitRune    = '•'
	pathRune     = '∙'
	smallMarker  = '•'
	largeMarker  = '●'
	selectedMark = '◎'
)

// ChartView is everything needed to draw one frame of the chart
type ChartView struct {
	Observer  domain.ObserverConfig
	Catalog   domain.Catalog
	Furniture projector.Furniture
	Paths     []projector.Circle
	Positions []domain.SourcePosition
	Selected  int // Source index to highlight, -1 for none
}

// DrawChart rasterizes a chart view onto a new canvas.
// Later layers overwrite earlier ones: grid, limits, paths, markers, labels.
func DrawChart(v ChartView, cols, rows int) *Canvas {
	c := NewCanvas(cols, rows, float64(v.Observer.WindowWidth), float64(v.Observer.WindowHeight))
	f := v.Furniture

	for _, s := range f.Spokes {
		c.Line(s, spokeRune, styles.GridColor)
	}
	for _, ring := range f.Rings {
		switch ring.Kind {
		case projector.RingLowerLimit, projector.RingUpperLimit:
			c.Circle(ring, limitRune, styles.LimitColor)
		default:
			c.Circle(ring, gridRune, styles.GridColor)
		}
	}
	// Ring labels sit beside the north-south spoke
	for _, l := range f.Labels {
		c.TextRight(l.At, l.Text, styles.GridTextColor)
	}
	for _, l := range f.Cardinals {
		c.Text(l.At, l.Text, styles.CardinalColor)
	}

	for _, p := range v.Paths {
		c.Circle(p, pathRune, styles.PathColor)
	}

	// Markers are always drawn; labels only for visible sources
	for _, p := range v.Positions {
		t := v.Catalog.Type(p.Source)
		glyph := markerRune(t.MarkerDiameter, c.Unit())
		if p.Index == v.Selected {
			glyph = selectedMark
		}
		c.Plot(p.Position, glyph, lipgloss.Color(t.FillColor))
	}
	for _, p := range v.Positions {
		if !p.Source.Visible {
			continue
		}
		at := p.Position
		at.Y += projector.LabelOffset
		// Keep the label off the marker's own row
		_, markerRow, _ := c.CellAt(p.Position)
		if _, labelRow, _ := c.CellAt(at); labelRow == markerRow {
			at.Y = p.Position.Y + 2*c.Unit()
		}
		c.Text(at, p.Source.Name, styles.LabelColor)
	}
	return c
}

// RenderChart draws a chart view into a styled string of cols x rows cells
func RenderChart(v ChartView, cols, rows int) string {
	return DrawChart(v, cols, rows).View()
}

// markerRune picks a glyph for a marker diameter given the cell size
func markerRune(diameter int, unit float64) rune {
	if float64(diameter) >= unit {
		return largeMarker
	}
	return smallMarker
}
