package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/skychart/internal/clock"
	"github.com/mmcdole/skychart/internal/tui/styles"
)

// TimeFieldLimit is the longest text the time field accepts
const TimeFieldLimit = 19

// TimePanel shows local, UTC and LST and hosts the local time editor
type TimePanel struct {
	editing bool
	input   textinput.Model
}

// NewTimePanel creates a time panel
func NewTimePanel() TimePanel {
	ti := textinput.New()
	ti.Placeholder = clock.DisplayLayout
	ti.CharLimit = TimeFieldLimit
	ti.Width = TimeFieldLimit + 1
	ti.Prompt = ""
	ti.TextStyle = styles.EditingStyle
	ti.PlaceholderStyle = styles.DimStyle

	return TimePanel{input: ti}
}

// StartEdit opens the editor pre-filled with the current local time
func (p *TimePanel) StartEdit(current string) tea.Cmd {
	p.editing = true
	p.input.SetValue(current)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Stop closes the editor
func (p *TimePanel) Stop() {
	p.editing = false
	p.input.Blur()
}

// IsEditing returns whether the editor is open
func (p TimePanel) IsEditing() bool {
	return p.editing
}

// Value returns the text being edited
func (p TimePanel) Value() string {
	return p.input.Value()
}

// Restore puts text back into the editor
func (p *TimePanel) Restore(text string) {
	p.input.SetValue(text)
	p.input.CursorEnd()
}

// Update handles input events, returns (panel, cmd, submitted)
func (p TimePanel) Update(msg tea.Msg) (TimePanel, tea.Cmd, bool) {
	if !p.editing {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return p, nil, true
		case "esc":
			p.Stop()
			return p, nil, false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

// View renders the three time lines and the daylight line
func (p TimePanel) View(times clock.Times, daylight clock.Daylight) string {
	local := styles.TimeValueStyle.Render(times.Local)
	if p.editing {
		local = p.input.View()
	}

	lines := []string{
		styles.TimeLabelStyle.Render("LOCAL") + local,
		styles.TimeLabelStyle.Render("UTC") + styles.TimeValueStyle.Render(times.UTC),
		styles.TimeLabelStyle.Render("LST") + styles.TimeValueStyle.Render(times.LST),
		styles.TimeLabelStyle.Render("SUN") + styles.SubtitleStyle.Render(daylight.String()),
	}
	return lipgloss.NewStyle().Render(strings.Join(lines, "\n"))
}
