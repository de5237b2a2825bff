package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/config"
)

// testEnv points every path at a fresh temporary home.
func testEnv(t *testing.T, ledger bool) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLedgerEnabled, map[bool]string{true: "true", false: "false"}[ledger])
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()

	var out bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, "", args...)
	require.NoError(t, err, "ecotrack %s", strings.Join(args, " "))
	return out
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestActivityAndStats(t *testing.T) {
	testEnv(t, false)

	res := decode(t, mustExecute(t, "activity", "add", "transport", "10", "--mode", "car", "-d", "Commute", "-o", "json"))
	activity := res["activity"].(map[string]any)
	assert.Equal(t, "transport", activity["type"])
	assert.InDelta(t, 2.1, activity["carbonFootprint"], 1e-9)

	mustExecute(t, "activity", "quick", "electricity")

	stats := decode(t, mustExecute(t, "stats", "-o", "json"))
	s := stats["stats"].(map[string]any)
	assert.InDelta(t, 27.1, s["totalCarbon"], 1e-9)
	assert.InDelta(t, 2.0, stats["activityCount"], 0)
	goal := stats["goal"].(map[string]any)
	assert.Equal(t, "ok", goal["health"])

	plain := mustExecute(t, "stats", "--locale", "en")
	assert.Contains(t, plain, "Carbon this month:  27.10 kg CO2")
	assert.Contains(t, plain, "[")

	list := mustExecute(t, "activity", "list", "--locale", "en")
	assert.Contains(t, list, "Commute")
	assert.Contains(t, list, "Électricité")
}

func TestActivityAdd_Rejected(t *testing.T) {
	testEnv(t, false)

	_, err := execute(t, "", "activity", "add", "transport", "abc")
	require.Error(t, err)

	_, err = execute(t, "", "activity", "add", "transport", "-5")
	require.Error(t, err)

	_, err = execute(t, "", "activity", "quick", "water")
	require.Error(t, err)
}

func TestStats_ExitCode(t *testing.T) {
	testEnv(t, false)

	mustExecute(t, "settings", "set", "--goal", "1")
	mustExecute(t, "activity", "add", "transport", "10")

	_, err := execute(t, "", "stats", "--exit-code")
	var goalErr *GoalExitError
	require.ErrorAs(t, err, &goalErr)
	assert.Equal(t, GoalExitCode, goalErr.ExitCode)

	_, err = execute(t, "", "stats")
	assert.NoError(t, err, "exit code is opt-in")
}

func TestSettings(t *testing.T) {
	testEnv(t, false)

	mustExecute(t, "settings", "set", "--name", "Alex", "--energy-price", "0.2", "--currency", "usd")
	show := decode(t, mustExecute(t, "settings", "show", "-o", "json"))
	assert.Equal(t, "Alex", show["name"])
	assert.InDelta(t, 0.2, show["greenit"].(map[string]any)["energyPrice"], 1e-9)

	_, err := execute(t, "", "settings", "set", "--energy-price", "-1")
	assert.Error(t, err)
}

func TestRecommendAndChallenges(t *testing.T) {
	testEnv(t, false)

	var recs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "recommend", "-o", "json")), &recs))
	assert.NotEmpty(t, recs)

	out := mustExecute(t, "challenges", "--locale", "en")
	assert.Contains(t, out, "CHALLENGE")
	assert.Contains(t, out, "Achievements: none yet")
}

func TestGreenIT(t *testing.T) {
	testEnv(t, true)

	res := decode(t, mustExecute(t, "greenit", "calc", "cloud", "--set", "compute-count=4", "-o", "json"))
	assert.NotEmpty(t, res["transactionId"])
	assert.Equal(t, true, res["submitted"])

	totals := decode(t, mustExecute(t, "greenit", "totals", "-o", "json"))
	assert.InDelta(t, 1.0, totals["totals"].(map[string]any)["slots"], 0)

	ledger := decode(t, mustExecute(t, "ledger", "list", "-o", "json"))
	assert.Equal(t, "journal", ledger["source"])
	txs := ledger["transactions"].([]any)
	require.Len(t, txs, 1)
	assert.Equal(t, res["transactionId"], txs[0].(map[string]any)["id"])
	assert.Equal(t, "verified", txs[0].(map[string]any)["status"])

	mustExecute(t, "greenit", "reset", "cloud")
	totals = decode(t, mustExecute(t, "greenit", "totals", "-o", "json"))
	assert.InDelta(t, 0.0, totals["totals"].(map[string]any)["slots"], 0)
	split := totals["split"].(map[string]any)
	assert.Equal(t, true, split["isPlaceholder"])

	_, err := execute(t, "", "greenit", "calc", "mainframe")
	assert.Error(t, err)

	practices := mustExecute(t, "greenit", "practices")
	assert.Contains(t, practices, "PRACTICE")
}

func TestLedger_StateFallback(t *testing.T) {
	testEnv(t, false)

	mustExecute(t, "greenit", "calc", "network", "--set", "wifi-count=3")
	ledger := decode(t, mustExecute(t, "ledger", "list", "-o", "json"))
	assert.Equal(t, "state", ledger["source"])
	assert.Len(t, ledger["transactions"], 1)
}

func TestState(t *testing.T) {
	testEnv(t, false)

	out := mustExecute(t, "state", "sample")
	assert.Contains(t, out, "Added 3 sample activities")

	acts := mustExecute(t, "activity", "list", "--all")
	assert.Contains(t, acts, "[sample]")

	out, err := execute(t, "n\n", "state", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset cancelled")

	out, err = execute(t, "y\n", "state", "reset", "--tracker")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted all tracker activities")

	stats := decode(t, mustExecute(t, "stats", "-o", "json", "--include-samples"))
	assert.InDelta(t, 0.0, stats["sampleCount"], 0)

	_, err = execute(t, "", "state", "reset", "--tracker", "--greenit", "--yes")
	assert.Error(t, err)

	path := mustExecute(t, "state", "path")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(path), config.StateFileName))
}

func TestStateImportLegacy(t *testing.T) {
	home := testEnv(t, false)

	export := filepath.Join(home, "export.json")
	require.NoError(t, os.WriteFile(export, []byte(`{"ecoTrackerData":{"activities":[
		{"id":1,"type":"heating","value":10,"unit":"kwh","date":"2025-03-05"}
	]}}`), 0o600))

	out := mustExecute(t, "state", "import-legacy", export)
	assert.Contains(t, out, "Imported 1 activities")

	out, err := execute(t, "n\n", "state", "import-legacy", export)
	require.NoError(t, err, "declining is not an error")
	assert.Contains(t, out, "Import skipped")
}

func TestReport(t *testing.T) {
	testEnv(t, false)
	dir := t.TempDir()

	mustExecute(t, "activity", "add", "electricity", "100")
	out := mustExecute(t, "report", "--dir", dir, "--name", "march", "--format", "xlsx,pdf")
	assert.Contains(t, out, "march.xlsx")

	for _, name := range []string{"march.xlsx", "march.pdf"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, err := execute(t, "", "report", "--dir", dir, "--format", "docx")
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	testEnv(t, false)
	mustExecute(t, "activity", "add", "electricity", "100")

	out := mustExecute(t, "metrics")
	assert.Contains(t, out, "ecotrack_")
	assert.Contains(t, out, "# TYPE")
}

func TestConfigCommands(t *testing.T) {
	home := testEnv(t, false)

	out := mustExecute(t, "config", "init")
	assert.Contains(t, out, filepath.Join(home, config.ConfigFileName))

	_, err := execute(t, "", "config", "init")
	assert.Error(t, err, "refuses to overwrite")
	mustExecute(t, "config", "init", "--force")

	mustExecute(t, "config", "set", "output.locale", "en")
	assert.Equal(t, "en\n", mustExecute(t, "config", "get", "output.locale"))

	_, err = execute(t, "", "config", "set", "output.locale", "de")
	assert.Error(t, err)
	_, err = execute(t, "", "config", "get", "nope")
	assert.Error(t, err)

	list := mustExecute(t, "config", "list")
	assert.Contains(t, list, "greenit.energy_price = ")

	out = mustExecute(t, "config", "validate", "--verbose")
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigValidate_Invalid(t *testing.T) {
	home := testEnv(t, false)
	require.NoError(t, os.WriteFile(filepath.Join(home, config.ConfigFileName),
		[]byte("output:\n  precision: 42\n"), 0o600))

	_, err := execute(t, "", "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = execute(t, "", "stats")
	assert.Error(t, err, "other commands refuse an invalid configuration")
}

func TestOutputFormat_Invalid(t *testing.T) {
	testEnv(t, false)
	_, err := execute(t, "", "stats", "-o", "yaml")
	assert.Error(t, err)
}

func TestDashboard_NonInteractive(t *testing.T) {
	testEnv(t, false)
	_, err := execute(t, "", "dashboard")
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, Confirm(&out, strings.NewReader("yes\n"), "Go?").Accepted)
	assert.Contains(t, out.String(), "Go? [y/N]")
	assert.False(t, Confirm(&out, strings.NewReader("\n"), "Go?").Accepted)
	assert.False(t, Confirm(&out, strings.NewReader(""), "Go?").Accepted)
}
