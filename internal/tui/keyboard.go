package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/skychart/internal/clock"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Only a forced exit while the catalog is being written
	if m.saving {
		if key.Matches(msg, Keys.ForceQuit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateChart
		return m, nil

	case StateEditTime:
		return m.handleTimeEdit(msg)
	}

	// Filter typing owns the keyboard
	if m.Menu.IsFilterTyping() {
		switch {
		case key.Matches(msg, Keys.Escape):
			m.Menu.ClearFilter()
		case msg.Type == tea.KeyEnter:
			m.Menu.CommitFilter()
		default:
			return m, m.Menu.Update(msg)
		}
		return m, nil
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		if row, ok := m.Menu.Selected(); ok {
			m.Session.SaveCursor(row)
		}
		m.saving = true
		return m, SaveCmd(m.Session)

	case key.Matches(msg, Keys.ForceQuit):
		m.logger.Warn("quitting without saving")
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Menu.IsFiltering() {
			m.Menu.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		return m, m.Menu.ToggleFilter()

	// Time
	case key.Matches(msg, Keys.Earlier):
		m.Session.OnTimeShift(-m.timeStep)
		return m, nil

	case key.Matches(msg, Keys.Later):
		m.Session.OnTimeShift(m.timeStep)
		return m, nil

	case key.Matches(msg, Keys.Now):
		m.Session.ResetToNow()
		return m, nil

	case key.Matches(msg, Keys.EditTime):
		m.State = StateEditTime
		return m, m.TimePanel.StartEdit(m.Session.Times().Local)

	// Menu
	case key.Matches(msg, Keys.Up):
		m.Menu.MoveUp()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.Menu.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.Menu.Home()
		return m, nil

	case key.Matches(msg, Keys.End):
		m.Menu.End()
		return m, nil

	case key.Matches(msg, Keys.Toggle):
		return m.handleToggle()

	case key.Matches(msg, Keys.TypeUp):
		return m.handleTypeStep(1)

	case key.Matches(msg, Keys.TypeDown):
		return m.handleTypeStep(-1)

	// Bookmarks
	case key.Matches(msg, Keys.Bookmark):
		if err := m.Session.Bookmark(); err != nil {
			return m.setStatus(err.Error(), true)
		}
		return m.setStatus("Bookmarked "+m.Session.Times().Local, false)

	case key.Matches(msg, Keys.NextBookmark):
		if !m.Session.NextBookmark() {
			return m.setStatus("No bookmarks", false)
		}
		return m.setStatus("Bookmark "+m.Session.Times().Local, false)
	}

	return m, nil
}

// handleTimeEdit routes keys to the time field and applies it on enter
func (m Model) handleTimeEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	previous := m.Session.Times().Local

	panel, cmd, submitted := m.TimePanel.Update(msg)
	m.TimePanel = panel
	if !m.TimePanel.IsEditing() {
		// Cancelled
		m.State = StateChart
		return m, cmd
	}
	if !submitted {
		return m, cmd
	}

	text := m.TimePanel.Value()
	m.TimePanel.Stop()
	m.State = StateChart

	if err := m.Session.OnTimeEdited(text); err != nil {
		m.TimePanel.Restore(previous)
		return m.setStatus(fmt.Sprintf("Invalid time %q, expected %s", text, clock.DisplayLayout), true)
	}
	return m.setStatus("Time set to "+m.Session.Times().Local, false)
}

// handleToggle flips the trace of the selected source
func (m Model) handleToggle() (tea.Model, tea.Cmd) {
	index, ok := m.Menu.Selected()
	if !ok {
		return m, nil
	}
	visible, err := m.Session.ToggleVisibility(index)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	name := m.Session.Catalog().Sources[index].Name
	if visible {
		return m.setStatus(name+" trace on", false)
	}
	return m.setStatus(name+" trace off", false)
}

// handleTypeStep moves the selected source to the next or previous type
func (m Model) handleTypeStep(delta int) (tea.Model, tea.Cmd) {
	index, ok := m.Menu.Selected()
	if !ok {
		return m, nil
	}
	typeIndex, err := m.Session.StepType(index, delta)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	name := m.Session.Catalog().Sources[index].Name
	return m.setStatus(fmt.Sprintf("%s type %d", name, typeIndex), false)
}
