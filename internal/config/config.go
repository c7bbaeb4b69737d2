// Package config loads dashkit settings with viper.
//
// Settings come from a YAML file, an optional environment section of that
// file (envs.<name>) and DASHKIT_* environment variables, in increasing
// precedence. The file and environment name fall back to the CONFIG_FILE
// and CONFIG_ENV variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"dashkit/internal/logging"
)

// Environment variables naming the config file and environment when no
// flags are given.
const (
	EnvConfigFile = "CONFIG_FILE"
	EnvConfigEnv  = "CONFIG_ENV"
	EnvPrefix     = "DASHKIT"
)

// ErrUnknownEnv is returned when the requested environment has no
// envs.<name> section.
var ErrUnknownEnv = errors.New("unknown config environment")

// Config is the full application configuration.
type Config struct {
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Data      DataConfig      `mapstructure:"data"`
	// Menus keeps the file order. viper maps are unordered, so menus are
	// read separately, see parseMenus.
	Menus []Menu `mapstructure:"-"`
	// Env is the environment section applied, if any.
	Env string `mapstructure:"-"`
}

// UIConfig selects the toolkit.
type UIConfig struct {
	// Type names the toolkit. Only "tui" is built in.
	Type string `mapstructure:"type"`
	// LayoutFile optionally replaces the page layout of the demo pages and
	// is reloaded when it changes.
	LayoutFile string `mapstructure:"layout_file"`
	Width      int    `mapstructure:"width"`
}

// LoggingConfig controls the structured log.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// Dir receives dashkit.log. Empty logs to stderr, which the terminal UI
	// hides, so interactive runs should set it.
	Dir string `mapstructure:"dir"`
}

// TelemetryConfig selects the OTLP trace endpoint.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// ChartConfig holds chart defaults.
type ChartConfig struct {
	Verbose bool `mapstructure:"verbose"`
	// Width and Height size exported images.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// DataConfig names data sources of the demo pages.
type DataConfig struct {
	SQLite string `mapstructure:"sqlite"`
	Query  string `mapstructure:"query"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UI:        UIConfig{Type: "tui", Width: 100},
		Logging:   LoggingConfig{Level: logging.LevelInfo},
		Telemetry: TelemetryConfig{ServiceName: "dashkit"},
		Chart:     ChartConfig{Width: 1200, Height: 800},
		Data:      DataConfig{Query: "SELECT * FROM prices ORDER BY date"},
	}
}

// SetDefaults registers the defaults on v. Every key must have a default
// for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("ui.type", d.UI.Type)
	v.SetDefault("ui.layout_file", d.UI.LayoutFile)
	v.SetDefault("ui.width", d.UI.Width)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("telemetry.service_name", d.Telemetry.ServiceName)
	v.SetDefault("telemetry.insecure", d.Telemetry.Insecure)
	v.SetDefault("chart.verbose", d.Chart.Verbose)
	v.SetDefault("chart.width", d.Chart.Width)
	v.SetDefault("chart.height", d.Chart.Height)
	v.SetDefault("data.sqlite", d.Data.SQLite)
	v.SetDefault("data.query", d.Data.Query)
}

// Load reads path, applies the env section and environment overrides, and
// validates the result. Empty arguments fall back to CONFIG_FILE and
// CONFIG_ENV; with no file at all the defaults are used.
func Load(path, env string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if env == "" {
		env = os.Getenv(EnvConfigEnv)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var raw []byte
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if env != "" {
		section := v.Sub("envs." + env)
		if section == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEnv, env)
		}
		if err := v.MergeConfigMap(section.AllSettings()); err != nil {
			return nil, fmt.Errorf("apply env %q: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Env = env
	if raw != nil {
		menus, err := parseMenus(raw, env)
		if err != nil {
			return nil, err
		}
		cfg.Menus = menus
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}
