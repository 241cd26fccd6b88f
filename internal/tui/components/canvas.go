package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/mmcdole/skychart/internal/projector"
)

// dashCells is the length of one dash (and one gap) on a dashed circle
const dashCells = 2

type cell struct {
	ch    rune
	color lipgloss.Color // Empty for the terminal default
}

// Canvas rasterizes chart-plane geometry onto terminal cells.
// The chart origin maps to the center cell. A row is twice as tall as a
// column is wide, so one row covers two units of the chart plane.
type Canvas struct {
	cols  int
	rows  int
	unit  float64 // Chart pixels per column
	cells []cell
}

// NewCanvas fits a planeWidth x planeHeight chart window into cols x rows cells
func NewCanvas(cols, rows int, planeWidth, planeHeight float64) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	unit := math.Max(planeWidth/float64(cols), planeHeight/float64(2*rows))
	if unit <= 0 {
		unit = 1
	}
	c := &Canvas{cols: cols, rows: rows, unit: unit, cells: make([]cell, cols*rows)}
	c.Clear()
	return c
}

// Clear blanks every cell
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
}

// Size returns the canvas dimensions in cells
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Unit returns the chart pixels covered by one column
func (c *Canvas) Unit() float64 { return c.unit }

// CellAt maps a chart-plane point to a cell. ok is false when off canvas.
func (c *Canvas) CellAt(p domain.ChartPosition) (col, row int, ok bool) {
	col = int(math.Floor(float64(c.cols)/2 + p.X/c.unit))
	row = int(math.Floor(float64(c.rows)/2 + p.Y/(2*c.unit)))
	return col, row, c.inside(col, row)
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// Set writes one cell, ignoring positions off canvas
func (c *Canvas) Set(col, row int, ch rune, color lipgloss.Color) {
	if !c.inside(col, row) {
		return
	}
	c.cells[row*c.cols+col] = cell{ch: ch, color: color}
}

// Rune returns the character at a cell, or 0 off canvas
func (c *Canvas) Rune(col, row int) rune {
	if !c.inside(col, row) {
		return 0
	}
	return c.cells[row*c.cols+col].ch
}

// Plot draws a single character at a chart-plane point
func (c *Canvas) Plot(p domain.ChartPosition, ch rune, color lipgloss.Color) {
	if col, row, ok := c.CellAt(p); ok {
		c.Set(col, row, ch, color)
	}
}

// Circle traces a ring by sampling it at sub-cell steps
func (c *Canvas) Circle(circle projector.Circle, ch rune, color lipgloss.Color) {
	if circle.Radius <= 0 {
		c.Plot(circle.Center, ch, color)
		return
	}
	length := 2 * math.Pi * circle.Radius / c.unit // Circumference in columns
	n := int(length * 2)
	if n < 24 {
		n = 24
	}
	for i := 0; i < n; i++ {
		if circle.Dashed && int(float64(i)/float64(n)*length/dashCells)%2 == 1 {
			continue
		}
		a := float64(i) / float64(n) * 2 * math.Pi
		c.Plot(domain.ChartPosition{
			X: circle.Center.X + math.Cos(a)*circle.Radius,
			Y: circle.Center.Y + math.Sin(a)*circle.Radius,
		}, ch, color)
	}
}

// Line draws a straight segment
func (c *Canvas) Line(seg projector.Segment, ch rune, color lipgloss.Color) {
	dx, dy := seg.To.X-seg.From.X, seg.To.Y-seg.From.Y
	n := int(math.Hypot(dx, dy) / c.unit * 2)
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.Plot(domain.ChartPosition{X: seg.From.X + dx*t, Y: seg.From.Y + dy*t}, ch, color)
	}
}

// Text writes s centered on a chart-plane point, clipping at the edges
func (c *Canvas) Text(p domain.ChartPosition, s string, color lipgloss.Color) {
	col, row, _ := c.CellAt(p)
	runes := []rune(s)
	start := col - len(runes)/2
	for i, r := range runes {
		c.Set(start+i, row, r, color)
	}
}

// TextRight writes s starting one cell right of a chart-plane point
func (c *Canvas) TextRight(p domain.ChartPosition, s string, color lipgloss.Color) {
	col, row, _ := c.CellAt(p)
	for i, r := range []rune(s) {
		c.Set(col+1+i, row, r, color)
	}
}

// Plain renders the canvas without styling
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.cells[row*c.cols+col].ch)
		}
	}
	return b.String()
}

// View renders the canvas, styling runs of same-colored cells together
func (c *Canvas) View() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(line); {
			end := start
			var run strings.Builder
			for end < len(line) && line[end].color == line[start].color {
				run.WriteRune(line[end].ch)
				end++
			}
			if color := line[start].color; color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(color).Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = end
		}
	}
	return b.String()
}
