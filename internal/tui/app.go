package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/skychart/internal/service"
	"github.com/mmcdole/skychart/internal/tui/components"
	"github.com/mmcdole/skychart/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateChart ApplicationState = iota
	StateEditTime
	StateHelp
)

// statusDuration is how long a status message stays in the footer
const statusDuration = 4 * time.Second

// Options configures the TUI
type Options struct {
	TimeStep time.Duration // Step for the earlier/later keys
	MenuRows int           // Most menu rows shown before scrolling
	Logger   *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Session *service.ChartSession

	// UI Components
	Menu      *components.SourceMenu
	TimePanel components.TimePanel
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	saving      bool

	// Saved is set once the catalog was written and the program is exiting
	Saved bool

	timeStep time.Duration
	menuRows int
	logger   *slog.Logger
}

// NewModel creates a new application model
func NewModel(session *service.ChartSession, opts Options) Model {
	if opts.TimeStep <= 0 {
		opts.TimeStep = time.Hour
	}
	if opts.MenuRows <= 0 {
		opts.MenuRows = 18
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	menu := components.NewSourceMenu(session.Catalog().Sources, opts.MenuRows)
	menu.SelectSource(session.Cursor())

	return Model{
		State:     StateChart,
		Session:   session,
		Menu:      menu,
		TimePanel: components.NewTimePanel(),
		Help:      help.New(),
		timeStep:  opts.TimeStep,
		menuRows:  opts.MenuRows,
		logger:    opts.Logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("skychart")
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SaveResultMsg:
		m.saving = false
		if msg.Err != nil || !msg.Saved {
			m.logger.Error("save on quit failed", "error", msg.Err)
			m.StatusMsg = "Save failed: " + errText(msg.Err) + " (Q quits without saving)"
			m.StatusIsErr = true
			return m, nil
		}
		m.Saved = true
		return m, tea.Quit

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input-bound messages
	var cmd tea.Cmd
	switch {
	case m.State == StateEditTime:
		m.TimePanel, cmd, _ = m.TimePanel.Update(msg)
	case m.Menu.IsFilterTyping():
		cmd = m.Menu.Update(msg)
	}
	return m, cmd
}

// setStatus shows a footer message that clears itself
func (m Model) setStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	if isErr {
		// Errors stay until the next action replaces them
		return m, nil
	}
	return m, ClearStatusCmd(statusDuration)
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	l := m.calculateLayout()
	s := m.Session

	selected, ok := m.Menu.Selected()
	if !ok {
		selected = -1
	}
	chart := components.RenderChart(components.ChartView{
		Observer:  s.Observer(),
		Catalog:   s.Catalog(),
		Furniture: s.Furniture(),
		Paths:     s.Paths(),
		Positions: s.Positions(),
		Selected:  selected,
	}, l.chartCols, l.chartRows)

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.TimePanel.View(s.Times(), s.Daylight()),
		"",
		m.Menu.View(s.Catalog()),
	)
	side = lipgloss.NewStyle().
		Width(l.sideWidth).
		MaxHeight(l.chartRows).
		Render(side)

	content := lipgloss.JoinHorizontal(lipgloss.Top, chart, " ", side)
	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}

// renderFooter renders the status line and key hints
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.saving:
		left = styles.DimStyle.Render("Saving...")
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	}

	right := m.Help.ShortHelpView(Keys.ShortHelp())

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough space - status wins
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	full := m.Help.FullHelpView(Keys.FullHelp())
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("skychart"),
		styles.SubtitleStyle.Render(m.Session.Observer().Coordinates()),
		"",
		full,
		"",
		styles.DimStyle.Render("Press any key to return..."),
	)
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}
