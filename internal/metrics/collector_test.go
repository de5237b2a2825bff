package metrics

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func testDocument(t *testing.T) (*engine.Engine, store.Document) {
	t.Helper()
	e := engine.New(engine.WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	doc, _, err := e.SubmitActivity(ctx, store.DefaultDocument(), tracker.ActivityInput{Type: "electricity", Value: 100, Date: "2025-03-02"})
	require.NoError(t, err)
	doc, _, err = e.Calculate(ctx, doc, greenit.DefaultDatacenterInput())
	require.NoError(t, err)
	return e, doc
}

func TestObserveTracker(t *testing.T) {
	e, doc := testDocument(t)
	c := NewCollector()
	c.ObserveTracker(e.TrackerSnapshot(doc, engine.SnapshotOptions{}))

	assert.InDelta(t, 50.0, testutil.ToFloat64(c.monthlyCarbon), 1e-9)
	assert.InDelta(t, 100.0, testutil.ToFloat64(c.monthlyEnergy), 1e-9)
	assert.InDelta(t, 90.0, testutil.ToFloat64(c.ecoScore), 1e-9)
	assert.InDelta(t, 50.0, testutil.ToFloat64(c.categoryCarbon.WithLabelValues("electricity")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(c.categoryCarbon))
}

func TestObserveTracker_PlaceholderBreakdownNotExported(t *testing.T) {
	e := engine.New(engine.WithClock(func() time.Time { return testNow }))
	c := NewCollector()
	c.ObserveTracker(e.TrackerSnapshot(store.DefaultDocument(), engine.SnapshotOptions{}))
	assert.Equal(t, 0, testutil.CollectAndCount(c.categoryCarbon))
}

func TestObserveGreenIT(t *testing.T) {
	e, doc := testDocument(t)
	c := NewCollector()
	c.ObserveGreenIT(e.GreenITSnapshot(doc))

	assert.InDelta(t, 3024.0, testutil.ToFloat64(c.slotEnergy.WithLabelValues("datacenter")), 1e-6)
	assert.InDelta(t, 1512.0, testutil.ToFloat64(c.totalCarbon), 1e-6)
	assert.InDelta(t, 453.6, testutil.ToFloat64(c.totalCost.WithLabelValues("EUR")), 1e-6)
	assert.InDelta(t, 30.0, testutil.ToFloat64(c.slotUtilization.WithLabelValues("datacenter")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(c.slotEnergy))
}

func TestWriteText(t *testing.T) {
	e, doc := testDocument(t)
	c := NewCollector()
	c.ObserveTracker(e.TrackerSnapshot(doc, engine.SnapshotOptions{}))
	c.ObserveGreenIT(e.GreenITSnapshot(doc))
	c.ObserveLedger(ledger.DispatchStats{Submitted: 2, Recorded: 1, Dropped: 1})

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "# TYPE ecotrack_tracker_monthly_carbon_kg gauge")
	assert.Contains(t, out, `ecotrack_greenit_slot_energy_kwh{slot="datacenter"} `)
	assert.Contains(t, out, `ecotrack_ledger_records{outcome="dropped"} 1`)
}
