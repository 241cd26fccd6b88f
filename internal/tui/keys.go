package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Time
	Earlier  key.Binding
	Later    key.Binding
	Now      key.Binding
	EditTime key.Binding

	// Menu
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	Toggle   key.Binding
	TypeUp   key.Binding
	TypeDown key.Binding
	Filter   key.Binding

	// Bookmarks
	Bookmark     key.Binding
	NextBookmark key.Binding

	// Actions
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Time
		Earlier: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "-1h"),
		),
		Later: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "+1h"),
		),
		Now: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "now"),
		),
		EditTime: key.NewBinding(
			key.WithKeys("e", "tab"),
			key.WithHelp("e", "edit time"),
		),

		// Menu
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first source"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last source"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "t"),
			key.WithHelp("enter", "toggle trace"),
		),
		TypeUp: key.NewBinding(
			key.WithKeys("+", "=", "]"),
			key.WithHelp("+", "next type"),
		),
		TypeDown: key.NewBinding(
			key.WithKeys("-", "["),
			key.WithHelp("-", "previous type"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),

		// Bookmarks
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark time"),
		),
		NextBookmark: key.NewBinding(
			key.WithKeys("'"),
			key.WithHelp("'", "next bookmark"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "save & quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("Q"),
			key.WithHelp("Q", "quit without saving"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Earlier, k.Later, k.Now, k.EditTime, k.Toggle, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap for the help screen
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Earlier, k.Later, k.Now, k.EditTime, k.Bookmark, k.NextBookmark},
		{k.Up, k.Down, k.Home, k.End, k.Filter},
		{k.Toggle, k.TypeUp, k.TypeDown},
		{k.Quit, k.ForceQuit, k.Help, k.Escape},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
