// Package config holds the typed run configuration of ttt-sim and its
// viper defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppName names the config directory and the env prefix
const AppName = "ttt-sim"

// EnvPrefix prefixes environment overrides, e.g. TTTSIM_CHART_WIDTH
const EnvPrefix = "TTTSIM"

// Config is the complete run configuration
type Config struct {
	// Input is the roster file (.csv, .txt, .yaml or .yml)
	Input string `mapstructure:"input"`
	// Output is the directory the workout files are written to
	Output string `mapstructure:"output"`
	// Rotations is the number of full paceline cycles to plan
	Rotations int `mapstructure:"rotations"`
	// View opens the interactive viewer after exporting
	View bool `mapstructure:"view"`

	Export  ExportConfig  `mapstructure:"export"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Console ConsoleConfig `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ExportConfig toggles each output format
type ExportConfig struct {
	ZWO     bool `mapstructure:"zwo"`
	PNG     bool `mapstructure:"png"`
	Console bool `mapstructure:"console"`
}

// ChartConfig sizes the PNG chart in pixels
type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// ConsoleConfig controls the terminal bar visualisation
type ConsoleConfig struct {
	// MaxRotations caps how many rotations are drawn per rider
	MaxRotations int `mapstructure:"max_rotations"`
	// BarHeight is the height of the tallest bar in rows
	BarHeight int `mapstructure:"bar_height"`
}

// LoggingConfig controls the rotating log file
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	// Verbose also writes the log to stderr
	Verbose bool `mapstructure:"verbose"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Output:    "workouts",
		Rotations: 5,
		Export: ExportConfig{
			ZWO:     true,
			PNG:     true,
			Console: true,
		},
		Chart: ChartConfig{
			Width:  1200,
			Height: 600,
		},
		Console: ConsoleConfig{
			MaxRotations: 2,
			BarHeight:    20,
		},
		Logging: LoggingConfig{
			File:       filepath.Join(ConfigDir(), AppName+".log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("input", defaults.Input)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("rotations", defaults.Rotations)
	v.SetDefault("view", defaults.View)

	v.SetDefault("export.zwo", defaults.Export.ZWO)
	v.SetDefault("export.png", defaults.Export.PNG)
	v.SetDefault("export.console", defaults.Export.Console)

	v.SetDefault("chart.width", defaults.Chart.Width)
	v.SetDefault("chart.height", defaults.Chart.Height)

	v.SetDefault("console.max_rotations", defaults.Console.MaxRotations)
	v.SetDefault("console.bar_height", defaults.Console.BarHeight)

	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	v.SetDefault("logging.verbose", defaults.Logging.Verbose)
}

// Setup prepares v for a run: defaults, env overrides and the config file.
// An explicit configFile must exist; the default location is optional.
func Setup(v *viper.Viper, configFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	// TTTSIM_CHART_WIDTH for chart.width
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", configFile, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// Load unmarshals v into a Config and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
