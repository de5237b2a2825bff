package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	// Test GetGlobalConfig initializes if needed
	cfg := GetGlobalConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, FormatTable, cfg.Output.DefaultFormat)

	// Test that subsequent calls return the same instance
	cfg2 := GetGlobalConfig()
	assert.Same(t, cfg, cfg2)

	// Test ResetGlobalConfigForTest resets the instance
	ResetGlobalConfigForTest()
	cfg3 := GetGlobalConfig()
	assert.NotSame(t, cfg, cfg3)

	custom := Default()
	custom.Output.Locale = "en"
	SetGlobalConfig(custom)
	assert.Same(t, custom, GetGlobalConfig())
}

func TestNew_ReadsConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvMonthlyGoal, "")
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte("tracker:\n  monthly_goal: 123\n"), 0o600))

	cfg := New()
	assert.InDelta(t, 123.0, cfg.Tracker.MonthlyGoal, 1e-9)
	assert.Equal(t, filepath.Join(home, ConfigFileName), cfg.Path())
}

func TestNew_MalformedFileFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvMonthlyGoal, "")
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte(":::"), 0o600))

	cfg := New()
	assert.InDelta(t, 500.0, cfg.Tracker.MonthlyGoal, 1e-9)
	assert.Equal(t, filepath.Join(home, ConfigFileName), cfg.Path(), "save still targets the config dir")
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "eco")
	t.Setenv(EnvHome, home)

	require.NoError(t, EnsureConfigDir())
	info, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetConfigDir(t *testing.T) {
	t.Run("ECOTRACK_HOME wins", func(t *testing.T) {
		t.Setenv(EnvHome, "/custom/eco")
		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/custom/eco", dir)
	})

	t.Run("defaults under home", func(t *testing.T) {
		t.Setenv(EnvHome, "")
		home := t.TempDir()
		t.Setenv("HOME", home)
		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".ecotrack"), dir)
	})
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	state, err := StatePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, StateFileName), state)

	cfg := Default()
	ledgerPath, err := cfg.LedgerPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, LedgerFileName), ledgerPath)

	cfg.Ledger.Path = "/var/lib/eco/ledger.db"
	ledgerPath, err = cfg.LedgerPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/eco/ledger.db", ledgerPath)
}

func TestEnsureLogDir(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.EnsureLogDir(), "no file configured")

	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "ecotrack.log")
	require.NoError(t, cfg.EnsureLogDir())
	_, err := os.Stat(filepath.Dir(cfg.Logging.File))
	assert.NoError(t, err)
}
