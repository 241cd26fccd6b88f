package main

import (
	"fmt"

	"github.com/mmcdole/skychart/internal/clock"
	"github.com/mmcdole/skychart/internal/sexagesimal"
	"github.com/spf13/cobra"
)

func newTimesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "times",
		Short: "Print local, UTC and sidereal time for the observer",
		Args:  cobra.NoArgs,
		RunE:  runTimes,
	}
	cmd.Flags().String("at", "", "local time as \"YYYY-MM-DD HH:MM\" (default now)")
	cmd.Flags().Bool("reference", false, "also print GMST-based sidereal time and the drift")
	return cmd
}

func runTimes(cmd *cobra.Command, args []string) error {
	a, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	obs, err := a.store.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load observer config: %w", err)
	}

	at, _ := cmd.Flags().GetString("at")
	local, err := a.chartTime(at)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, obs.Coordinates())
	fmt.Fprintln(out, clock.DisplayTimes(local, obs))
	fmt.Fprintf(out, "SUN   %s\n", clock.DaylightFor(local, obs))

	if reference, _ := cmd.Flags().GetBool("reference"); reference {
		utc := clock.ToUTC(local)
		ref := clock.ReferenceLST(utc, obs.Longitude)
		fmt.Fprintf(out, "REFERENCE LST %s  drift %+.2f min\n",
			sexagesimal.FormatHoursPrec(ref, 0), clock.Drift(utc, obs.Longitude))
	}
	return nil
}
