package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/skychart/internal/service"
)

// Command factories

// SaveCmd writes the session's catalog back before exit
func SaveCmd(session *service.ChartSession) tea.Cmd {
	return func() tea.Msg {
		saved, err := session.Shutdown()
		return SaveResultMsg{Saved: saved, Err: err}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
