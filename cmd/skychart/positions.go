package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/skychart/internal/clock"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/mmcdole/skychart/internal/projector"
	"github.com/mmcdole/skychart/internal/search"
	"github.com/mmcdole/skychart/internal/sexagesimal"
	"github.com/mmcdole/skychart/internal/tui/styles"
	"github.com/spf13/cobra"
)

func newPositionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Print the chart position of every source",
		Args:  cobra.NoArgs,
		RunE:  runPositions,
	}
	cmd.Flags().String("at", "", "local time as \"YYYY-MM-DD HH:MM\" (default now)")
	cmd.Flags().String("source", "", "only the source best matching this name")
	return cmd
}

func runPositions(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	at, _ := cmd.Flags().GetString("at")
	local, err := a.chartTime(at)
	if err != nil {
		return err
	}

	lst := clock.LocalToLST(local, a.obs)
	positions := projector.ProjectAll(a.catalog.Sources, lst, a.obs)

	if name, _ := cmd.Flags().GetString("source"); name != "" {
		i, err := search.FindSource(a.catalog.Sources, name)
		if err != nil {
			return err
		}
		positions = positions[i : i+1]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, clock.DisplayTimes(local, a.obs))
	fmt.Fprintln(out, positionTable(positions))
	return nil
}

// positionTable renders projected positions, one row per source
func positionTable(positions []domain.SourcePosition) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers("#", "Source", "RA", "Dec", "X", "Y", "Trace")

	for _, p := range positions {
		trace := "0"
		if p.Source.Visible {
			trace = "1"
		}
		t.Row(
			strconv.Itoa(p.Index),
			p.Source.Name,
			sexagesimal.FormatHours(p.Source.RightAscension),
			sexagesimal.FormatDegrees(p.Source.Declination),
			strconv.FormatFloat(p.Position.X, 'f', 1, 64),
			strconv.FormatFloat(p.Position.Y, 'f', 1, 64),
			trace,
		)
	}
	return t.Render()
}
