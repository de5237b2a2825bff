// Package config loads the ecotrack configuration file, applies environment
// overrides and exposes the process-wide configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/tracker"
)

// Environment variables that override file values.
const (
	EnvHome          = "ECOTRACK_HOME"
	EnvMonthlyGoal   = "ECOTRACK_MONTHLY_GOAL"
	EnvEnergyPrice   = "ECOTRACK_ENERGY_PRICE"
	EnvLedgerEnabled = "ECOTRACK_LEDGER_ENABLED"
	EnvLogLevel      = "ECOTRACK_LOG_LEVEL"
	EnvLogFormat     = "ECOTRACK_LOG_FORMAT"
)

// File names under the config directory.
const (
	ConfigFileName = "config.yaml"
	StateFileName  = "state.json"
	LedgerFileName = "ledger.db"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config is the on-disk configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Tracker TrackerConfig `yaml:"tracker"`
	GreenIT GreenITConfig `yaml:"greenit"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Output  OutputConfig  `yaml:"output"`

	path string
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// TrackerConfig holds the EcoTracker defaults applied to new state.
type TrackerConfig struct {
	MonthlyGoal      float64 `yaml:"monthly_goal"`
	Notifications    bool    `yaml:"notifications"`
	DailyReminders   bool    `yaml:"daily_reminders"`
	StrictCategories bool    `yaml:"strict_categories"`
}

// GreenITConfig holds the Green IT pricing defaults applied to new state.
type GreenITConfig struct {
	EnergyPrice  float64 `yaml:"energy_price"`
	CarbonFactor float64 `yaml:"carbon_factor"`
	Currency     string  `yaml:"currency"`
}

// LedgerConfig controls the calculation journal.
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// OutputConfig controls presentation.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Locale        string `yaml:"locale"`
	Precision     int    `yaml:"precision"`
}

// Default returns the built-in configuration without reading the file system.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Tracker: TrackerConfig{
			MonthlyGoal:   tracker.DefaultMonthlyGoal,
			Notifications: true,
		},
		GreenIT: GreenITConfig{
			EnergyPrice:  greenit.DefaultEnergyPrice,
			CarbonFactor: greenit.DefaultCarbonFactor,
			Currency:     greenit.DefaultCurrency,
		},
		Ledger: LedgerConfig{Enabled: true},
		Output: OutputConfig{DefaultFormat: FormatTable, Locale: "fr", Precision: 2},
	}
}

// New returns the defaults overlaid with the config file in the config
// directory, if present, and the environment overrides. A malformed file is
// ignored so the CLI stays usable; Load reports it.
func New() *Config {
	path := ""
	if dir, err := GetConfigDir(); err == nil {
		path = filepath.Join(dir, ConfigFileName)
	}
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
		cfg.path = path
		cfg.applyEnv()
	}
	return cfg
}

// Load reads path onto the defaults and applies the environment overrides.
// A missing file yields the defaults. Fields absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to its file, creating the directory.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file path")
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.path = path
	return nil
}

// applyEnv applies ECOTRACK_* overrides. Unparseable values are ignored.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMonthlyGoal); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.Tracker.MonthlyGoal = f
		}
	}
	if v := os.Getenv(EnvEnergyPrice); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			c.GreenIT.EnergyPrice = f
		}
	}
	if v := os.Getenv(EnvLedgerEnabled); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Ledger.Enabled = b
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = strings.ToLower(strings.TrimSpace(v))
	}
}

// TrackerSettings returns the user settings applied to a fresh tracker state.
func (c *Config) TrackerSettings() tracker.Settings {
	return tracker.Settings{
		Notifications:  c.Tracker.Notifications,
		DailyReminders: c.Tracker.DailyReminders,
		MonthlyGoal:    c.Tracker.MonthlyGoal,
	}
}

// GreenITSettings returns the pricing parameters applied to a fresh Green IT state.
func (c *Config) GreenITSettings() greenit.Settings {
	return greenit.Settings{
		EnergyPrice:  c.GreenIT.EnergyPrice,
		CarbonFactor: c.GreenIT.CarbonFactor,
		Currency:     strings.ToUpper(c.GreenIT.Currency),
	}
}
