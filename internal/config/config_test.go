package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvMonthlyGoal, EnvEnergyPrice, EnvLedgerEnabled, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, 500.0, cfg.Tracker.MonthlyGoal, 1e-9)
	assert.True(t, cfg.Tracker.Notifications)
	assert.False(t, cfg.Tracker.DailyReminders)
	assert.InDelta(t, 0.15, cfg.GreenIT.EnergyPrice, 1e-9)
	assert.InDelta(t, 0.5, cfg.GreenIT.CarbonFactor, 1e-9)
	assert.Equal(t, "EUR", cfg.GreenIT.Currency)
	assert.True(t, cfg.Ledger.Enabled)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, "fr", cfg.Output.Locale)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default().Tracker, cfg.Tracker)
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("greenit:\n  currency: USD\ntracker:\n  monthly_goal: 300\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "USD", cfg.GreenIT.Currency)
		assert.InDelta(t, 0.15, cfg.GreenIT.EnergyPrice, 1e-9)
		assert.InDelta(t, 300.0, cfg.Tracker.MonthlyGoal, 1e-9)
		assert.True(t, cfg.Tracker.Notifications)
		assert.Equal(t, path, cfg.Path())
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tracker: [unclosed"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvMonthlyGoal, "250")
	t.Setenv(EnvEnergyPrice, "0.3")
	t.Setenv(EnvLedgerEnabled, "false")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.InDelta(t, 250.0, cfg.Tracker.MonthlyGoal, 1e-9)
	assert.InDelta(t, 0.3, cfg.GreenIT.EnergyPrice, 1e-9)
	assert.False(t, cfg.Ledger.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMonthlyGoal, "lots")
	t.Setenv(EnvLedgerEnabled, "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.InDelta(t, 500.0, cfg.Tracker.MonthlyGoal, 1e-9)
	assert.True(t, cfg.Ledger.Enabled)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Output.Locale = "en"
	cfg.Tracker.StrictCategories = true
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", loaded.Output.Locale)
	assert.True(t, loaded.Tracker.StrictCategories)

	assert.Error(t, Default().Save(), "no path")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero goal accepted", func(c *Config) { c.Tracker.MonthlyGoal = 0 }, true},
		{"negative goal accepted", func(c *Config) { c.Tracker.MonthlyGoal = -10 }, true},
		{"negative energy price", func(c *Config) { c.GreenIT.EnergyPrice = -1 }, false},
		{"negative carbon factor", func(c *Config) { c.GreenIT.CarbonFactor = -0.1 }, false},
		{"empty currency", func(c *Config) { c.GreenIT.Currency = "" }, false},
		{"unknown output format", func(c *Config) { c.Output.DefaultFormat = "yaml" }, false},
		{"unknown locale", func(c *Config) { c.Output.Locale = "de" }, false},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }, false},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, false},
		{"precision out of range", func(c *Config) { c.Output.Precision = 9 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("greenit.energy_price")
	require.NoError(t, err)
	assert.Equal(t, "0.15", v)

	require.NoError(t, cfg.Set("greenit.energy_price", "0.22"))
	assert.InDelta(t, 0.22, cfg.GreenIT.EnergyPrice, 1e-9)

	require.NoError(t, cfg.Set("Tracker.Notifications", "false"))
	assert.False(t, cfg.Tracker.Notifications)

	require.NoError(t, cfg.Set("output.precision", "3"))
	assert.Equal(t, 3, cfg.Output.Precision)

	err = cfg.Set("greenit.energy_price", "cheap")
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.InDelta(t, 0.22, cfg.GreenIT.EnergyPrice, 1e-9, "unchanged on parse error")

	err = cfg.Set("output.locale", "de")
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, "fr", cfg.Output.Locale, "unchanged on validation error")

	_, err = cfg.Get("nope.key")
	require.ErrorIs(t, err, ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope.key", "1"), ErrUnknownKey)
}

func TestKeysAndList(t *testing.T) {
	keys := Keys()
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "ledger.enabled")

	list := Default().List()
	assert.Len(t, list, len(keys))
	assert.Equal(t, "true", list["ledger.enabled"])
	assert.Equal(t, "500", list["tracker.monthly_goal"])
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Equal(t, "debug", got.Level)

	lc.File = "/tmp/ecotrack.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/ecotrack.log", got.File)
}
