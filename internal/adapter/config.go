package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. The observer site and the
// source catalog live in their own pipe-delimited files named under Files.
type Config struct {
	Files    FilesConfig    `mapstructure:"files"`
	Observer ObserverConfig `mapstructure:"observer"`
	State    StateConfig    `mapstructure:"state"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// FilesConfig locates the observer config and catalog files
type FilesConfig struct {
	Config  string `mapstructure:"config"`   // Observer config file
	Catalog string `mapstructure:"catalog"`  // Types + sources file
	DataDir string `mapstructure:"data_dir"` // Base for relative paths
}

// ObserverConfig holds settings that are not part of the observer file
type ObserverConfig struct {
	Timezone string `mapstructure:"timezone"` // IANA name, empty for the host zone
}

// StateConfig holds session state persistence settings
type StateConfig struct {
	Path   string `mapstructure:"path"`   // bbolt file, empty for memory-only
	Resume bool   `mapstructure:"resume"` // Start at the last viewed time instead of now
}

// UIConfig holds UI configuration
type UIConfig struct {
	TimeStep time.Duration `mapstructure:"time_step"`
	MenuRows int           `mapstructure:"menu_rows"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Files: FilesConfig{
			Config:  "config.csv",
			Catalog: "sources.csv",
			DataDir: ".",
		},
		State: StateConfig{
			Path: filepath.Join(defaultDataPath(), "state.db"),
		},
		UI: UIConfig{
			TimeStep: time.Hour,
			MenuRows: 18,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "skychart.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "skychart")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "skychart")
	}
}

// DefaultConfigDir returns the directory searched for config.yaml
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "skychart")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "skychart")
	}
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(cfg *Config) {
	viper.SetDefault("files.config", cfg.Files.Config)
	viper.SetDefault("files.catalog", cfg.Files.Catalog)
	viper.SetDefault("files.data_dir", cfg.Files.DataDir)
	viper.SetDefault("observer.timezone", cfg.Observer.Timezone)
	viper.SetDefault("state.path", cfg.State.Path)
	viper.SetDefault("state.resume", cfg.State.Resume)
	viper.SetDefault("ui.time_step", cfg.UI.TimeStep)
	viper.SetDefault("ui.menu_rows", cfg.UI.MenuRows)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment.
// An empty configFile searches the default locations.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(cfg)

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(DefaultConfigDir())
		viper.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. SKYCHART_UI_TIME_STEP
	viper.SetEnvPrefix("SKYCHART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.UI.TimeStep <= 0 {
		return nil, fmt.Errorf("ui.time_step must be positive, got %s", cfg.UI.TimeStep)
	}
	if cfg.UI.MenuRows <= 0 {
		return nil, fmt.Errorf("ui.menu_rows must be positive, got %d", cfg.UI.MenuRows)
	}

	return cfg, nil
}

// SaveConfig writes cfg as config.yaml into dir
func SaveConfig(cfg *Config, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("files.config", cfg.Files.Config)
	viper.Set("files.catalog", cfg.Files.Catalog)
	viper.Set("files.data_dir", cfg.Files.DataDir)
	viper.Set("observer.timezone", cfg.Observer.Timezone)
	viper.Set("state.path", cfg.State.Path)
	viper.Set("state.resume", cfg.State.Resume)
	viper.Set("ui.time_step", cfg.UI.TimeStep.String())
	viper.Set("ui.menu_rows", cfg.UI.MenuRows)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

// ConfigPath returns the resolved observer config file path
func (c *Config) ConfigPath() string {
	return c.resolve(c.Files.Config)
}

// CatalogPath returns the resolved catalog file path
func (c *Config) CatalogPath() string {
	return c.resolve(c.Files.Catalog)
}

// StatePath returns the resolved state file path, empty for memory-only
func (c *Config) StatePath() string {
	if c.State.Path == "" {
		return ""
	}
	return ExpandHome(c.State.Path)
}

func (c *Config) resolve(name string) string {
	name = ExpandHome(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(ExpandHome(c.Files.DataDir), name)
}

// Location returns the observer's time zone
func (c *Config) Location() (*time.Location, error) {
	if c.Observer.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Observer.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid observer.timezone %q: %w", c.Observer.Timezone, err)
	}
	return loc, nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
