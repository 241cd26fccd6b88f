package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mmcdole/skychart/internal/adapter"
	"github.com/mmcdole/skychart/internal/catalog"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default observer config and catalog if absent",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().Bool("app-config", false, "also write config.yaml with the current settings")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	a, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	files := []struct {
		path     string
		template string
	}{
		{a.cfg.ConfigPath(), catalog.ConfigTemplate},
		{a.cfg.CatalogPath(), catalog.CatalogTemplate},
	}
	for _, f := range files {
		created, err := catalog.EnsureTemplate(f.path, f.template)
		if err != nil {
			return err
		}
		report(out, f.path, created)
	}

	if appConfig, _ := cmd.Flags().GetBool("app-config"); appConfig {
		dir := adapter.DefaultConfigDir()
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			report(out, path, false)
			return nil
		}
		path, err := adapter.SaveConfig(a.cfg, dir)
		if err != nil {
			return err
		}
		report(out, path, true)
	}
	return nil
}

func report(out io.Writer, path string, created bool) {
	if created {
		fmt.Fprintf(out, "created %s\n", path)
		return
	}
	fmt.Fprintf(out, "kept    %s\n", path)
}
