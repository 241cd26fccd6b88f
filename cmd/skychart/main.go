package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mmcdole/skychart/internal/adapter"
	"github.com/mmcdole/skychart/internal/catalog"
	"github.com/mmcdole/skychart/internal/clock"
	"github.com/mmcdole/skychart/internal/domain"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "skychart",
		Short: "Rotating sky chart for a fixed observer",
		Long: "skychart draws the apparent position of a catalog of celestial sources " +
			"for a chosen moment, using an approximate local sidereal time.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runChart,
	}

	root.PersistentFlags().String("config", "", "config file (default ~/.config/skychart/config.yaml)")

	root.AddCommand(newTimesCmd(), newPositionsCmd(), newInitCmd())
	return root
}

// app is what every command needs after startup
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	closer  io.Closer
	store   *catalog.FileStore
	obs     domain.ObserverConfig
	catalog domain.Catalog
	loc     *time.Location
}

// loadApp reads configuration, sets up logging and loads the observer
// config and catalog, creating them from templates when absent
func loadApp(cmd *cobra.Command) (*app, error) {
	a, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a.obs, err = a.store.LoadConfig()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load observer config: %w", err)
	}
	a.catalog, err = a.store.LoadCatalog()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a.logger.Info(a.obs.Coordinates())
	return a, nil
}

// loadConfig reads configuration and sets up logging only
func loadConfig(cmd *cobra.Command) (*app, error) {
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := adapter.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		closer = nil
	}
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		closer: closer,
		store:  catalog.NewFileStore(cfg.ConfigPath(), cfg.CatalogPath(), logger),
		loc:    loc,
	}, nil
}

// Close releases the log file
func (a *app) Close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// chartTime resolves --at, defaulting to the current minute
func (a *app) chartTime(at string) (time.Time, error) {
	if at == "" {
		return time.Now().In(a.loc).Truncate(time.Minute), nil
	}
	return clock.ParseLocal(at, a.loc)
}
