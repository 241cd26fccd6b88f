package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/skychart/internal/service"
	"github.com/mmcdole/skychart/internal/store"
	"github.com/mmcdole/skychart/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("the chart needs an interactive terminal; try 'skychart times' or 'skychart positions'")

// runChart runs the interactive chart
func runChart(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting skychart", "version", Version)

	state, err := store.NewStateStore(a.cfg.StatePath())
	if err != nil {
		// Another instance may hold the lock; run without session state
		a.logger.Warn("session state unavailable, using memory only", "path", a.cfg.StatePath(), "error", err)
		state, _ = store.NewStateStore("")
	}
	defer state.Close()

	session := service.NewChartSession(a.obs, a.catalog, a.store, state, a.loc, a.logger)
	if a.cfg.State.Resume {
		session.Resume()
	}

	model := tui.NewModel(session, tui.Options{
		TimeStep: a.cfg.UI.TimeStep,
		MenuRows: a.cfg.UI.MenuRows,
		Logger:   a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI")

	final, err := p.Run()
	if err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok && !m.Saved {
		a.logger.Warn("exited without saving catalog")
	}

	a.logger.Info("shutting down")
	return nil
}
