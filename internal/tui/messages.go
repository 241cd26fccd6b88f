package tui

// Message types for the TUI

// SaveResultMsg reports the outcome of writing the catalog on quit
type SaveResultMsg struct {
	Saved bool
	Err   error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
