package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/tracker"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return s
}

func TestNew_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ecotrack", DefaultFileName), s.Path())
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)
	doc, found, err := s.Load()
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, s.Exists())
	assert.Equal(t, SchemaVersion, doc.SchemaVersion)
	assert.Equal(t, tracker.DefaultMonthlyGoal, doc.Tracker.User.Settings.MonthlyGoal)
	assert.Len(t, doc.Gamification.Challenges, 2)
	assert.InDelta(t, greenit.DefaultEnergyPrice, doc.GreenIT.Settings.EnergyPrice, 1e-9)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	doc := DefaultDocument()
	doc.SavedAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	doc.Tracker.Activities = []tracker.Activity{
		tracker.Recompute(tracker.Activity{ID: "01J", Type: "electricity", Value: 10, Date: "2025-05-01"}),
	}
	doc.GreenIT.Calculations = doc.GreenIT.Calculations.With(
		greenit.SlotDatacenter,
		greenit.DefaultDatacenterInput().Calculate(greenit.DefaultSettings(), doc.SavedAt).Result,
	)

	require.NoError(t, s.Save(doc))
	assert.True(t, s.Exists())

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file renamed away")
	_, err = os.Stat(s.Path() + ".lock")
	assert.True(t, os.IsNotExist(err), "lock released")

	got, found, err := s.Load()
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, got.Tracker.Activities, 1)
	assert.InDelta(t, 5.0, got.Tracker.Activities[0].CarbonFootprint, 1e-9)
	require.NotNil(t, got.GreenIT.Calculations.Datacenter)
	assert.InDelta(t, 3024.0, got.GreenIT.Calculations.Datacenter.Energy, 1e-6)
	assert.Nil(t, got.GreenIT.Calculations.Cloud)
}

func TestSave_UsesLegacyKeys(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(DefaultDocument()))
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	for _, key := range []string{"schemaVersion", "ecoTrackerData", "ecoTrackerGamification", "greenITData"} {
		assert.Contains(t, string(data), fmt.Sprintf("%q", key))
	}
}

func TestSave_StampsMissingVersion(t *testing.T) {
	s := newTestStore(t)
	doc := DefaultDocument()
	doc.SchemaVersion = ""
	require.NoError(t, s.Save(doc))
	got, _, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, got.SchemaVersion)
}

func TestLoad_Corrupted(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))
	_, found, err := s.Load()
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrStateCorrupted)
}

func TestLoad_PartialDocumentKeepsDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"schemaVersion":"1.0.0","ecoTrackerData":{"activities":null}}`), 0o600))
	doc, _, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.SchemaVersion)
	assert.NotNil(t, doc.Tracker.Activities)
	assert.Equal(t, tracker.DefaultUserName, doc.Tracker.User.Name)
	assert.Equal(t, greenit.DefaultCurrency, doc.GreenIT.Settings.Currency)
}

func TestLock_StaleLockRemoved(t *testing.T) {
	s := newTestStore(t)
	lock := s.Path() + ".lock"
	require.NoError(t, os.WriteFile(lock, []byte("999999999"), 0o600))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(lock, old, old))

	require.NoError(t, s.Save(DefaultDocument()))
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Remove(), "missing file is fine")
	require.NoError(t, s.Save(DefaultDocument()))
	require.NoError(t, s.Remove())
	assert.False(t, s.Exists())
}

func TestDocumentClone(t *testing.T) {
	doc := DefaultDocument()
	doc.Tracker.Activities = []tracker.Activity{{ID: "a"}}
	clone := doc.Clone()
	clone.Tracker.Activities[0].ID = "b"
	clone.Gamification.Challenges[0].Current = 42
	assert.Equal(t, "a", doc.Tracker.Activities[0].ID)
	assert.Zero(t, doc.Gamification.Challenges[0].Current)
}
