package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activity(typ string, value float64, date string) Activity {
	return Recompute(Activity{Type: typ, Value: value, Date: date})
}

func TestEcoScore(t *testing.T) {
	tests := []struct {
		name        string
		carbon      float64
		goal        float64
		want        int
		wantDefined bool
	}{
		{"no carbon", 0, 500, 100, true},
		{"half goal", 250, 500, 50, true},
		{"over goal clamps to zero", 900, 500, 0, true},
		{"rounding", 1, 3, 67, true},
		{"zero goal", 0, 0, 0, false},
		{"negative goal", 10, -5, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defined := EcoScore(tt.carbon, tt.goal)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDefined, defined)
		})
	}
}

func TestMonthlyStats(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	t.Run("empty ledger", func(t *testing.T) {
		s := MonthlyStats(nil, 500, now)
		assert.Zero(t, s.TotalCarbon)
		assert.Zero(t, s.TotalEnergy)
		assert.Equal(t, 100, s.EcoScore)
		assert.True(t, s.GoalDefined)
	})

	t.Run("filters to current month", func(t *testing.T) {
		ledger := []Activity{
			activity("electricity", 100, "2025-03-02"), // 50 kg, 100 kWh
			activity("heating", 50, "2025-03-10"),      // 9 kg, 50 kWh
			activity("transport", 20, "2025-03-11"),    // 4.2 kg
			activity("water", 1000, "2025-02-28"),      // previous month
			activity("electricity", 100, "2024-03-05"), // previous year
			{Type: "waste", Value: 1, Date: "garbage", CarbonFootprint: 0.5},
		}
		s := MonthlyStats(ledger, 500, now)
		assert.Equal(t, 3, s.ActivityCount)
		assert.InDelta(t, 63.2, s.TotalCarbon, 1e-9)
		assert.InDelta(t, 150.0, s.TotalEnergy, 1e-9)
		assert.InDelta(t, 3.16, s.TotalSavings, 1e-9)
		assert.Equal(t, 87, s.EcoScore)
	})

	t.Run("uses the clock location", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*3600)
		localNow := time.Date(2025, 4, 1, 1, 0, 0, 0, tokyo)
		s := MonthlyStats([]Activity{activity("electricity", 10, "2025-04-01")}, 500, localNow)
		assert.Equal(t, 1, s.ActivityCount)
	})

	t.Run("idempotent", func(t *testing.T) {
		ledger := []Activity{activity("electricity", 33.3, "2025-03-02"), activity("waste", 7, "2025-03-03")}
		first := MonthlyStats(ledger, 200, now)
		second := MonthlyStats(ledger, 200, now)
		assert.Equal(t, first, second)
	})

	t.Run("undefined goal", func(t *testing.T) {
		s := MonthlyStats([]Activity{activity("electricity", 10, "2025-03-02")}, 0, now)
		assert.Zero(t, s.EcoScore)
		assert.False(t, s.GoalDefined)
	})
}

func TestCategoryBreakdown(t *testing.T) {
	t.Run("no data is placeholder", func(t *testing.T) {
		b := CategoryBreakdown(nil)
		require.True(t, b.IsPlaceholder)
		require.Len(t, b.Buckets, 5)
		assert.Equal(t, "Transport", b.Buckets[0].Label)
		assert.InDelta(t, 35.0, b.Buckets[0].Carbon, 1e-9)
		assert.InDelta(t, 100.0, b.Total(), 1e-9)
	})

	t.Run("zero carbon records still placeholder", func(t *testing.T) {
		b := CategoryBreakdown([]Activity{activity("water", 0, "2025-01-01")})
		assert.True(t, b.IsPlaceholder)
	})

	t.Run("drops empty buckets and keeps order", func(t *testing.T) {
		ledger := []Activity{
			activity("waste", 2, "2025-01-01"),
			activity("transport", 10, "2024-06-01"),
			activity("transport", 5, "2023-06-01"),
			activity("food", 5, "2023-06-01"),
		}
		b := CategoryBreakdown(ledger)
		assert.False(t, b.IsPlaceholder)
		require.Len(t, b.Buckets, 2)
		assert.Equal(t, "transport", b.Buckets[0].Category)
		assert.InDelta(t, 3.15, b.Buckets[0].Carbon, 1e-9)
		assert.Equal(t, "Déchets", b.Buckets[1].Label)
		assert.InDelta(t, 1.0, b.Buckets[1].Carbon, 1e-9)
	})

	t.Run("bucket sum equals ledger total", func(t *testing.T) {
		ledger := []Activity{
			activity("electricity", 12.34, "2025-01-01"),
			activity("heating", 7.77, "2025-01-02"),
			activity("water", 123, "2025-01-03"),
			activity("transport", 3.3, "2025-01-04"),
		}
		var total float64
		for _, a := range ledger {
			total += a.CarbonFootprint
		}
		assert.InDelta(t, total, CategoryBreakdown(ledger).Total(), 1e-9)
	})
}

func TestMonthlyTrend(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	t.Run("placeholder when empty", func(t *testing.T) {
		tr := MonthlyTrend(nil, now)
		require.True(t, tr.IsPlaceholder)
		require.Len(t, tr.Points, TrendMonths)
		assert.InDelta(t, 45.0, tr.Points[0].Carbon, 1e-9)
		assert.InDelta(t, 185.0, tr.Points[5].Energy, 1e-9)
		assert.Equal(t, time.October, tr.Points[0].Month)
		assert.Equal(t, 2024, tr.Points[0].Year)
		assert.Equal(t, "mars", tr.Points[5].Label)
	})

	t.Run("real series oldest first", func(t *testing.T) {
		ledger := []Activity{
			activity("electricity", 10.4, "2025-03-01"),
			activity("heating", 20.3, "2025-03-05"),
			activity("transport", 100, "2025-01-15"),
			activity("electricity", 10, "2024-09-30"), // outside the window
		}
		tr := MonthlyTrend(ledger, now)
		assert.False(t, tr.IsPlaceholder)
		assert.InDelta(t, 0.0, tr.Points[0].Carbon, 1e-9)
		assert.InDelta(t, 21.0, tr.Points[3].Carbon, 1e-9)
		assert.InDelta(t, 0.0, tr.Points[3].Energy, 1e-9)
		assert.InDelta(t, 8.85, tr.Points[5].Carbon, 1e-9)
		assert.InDelta(t, 31.0, tr.Points[5].Energy, 1e-9)
		assert.Equal(t, "janv.", tr.Points[3].Label)
	})
}

func TestRecent(t *testing.T) {
	ledger := make([]Activity, 8)
	for i := range ledger {
		ledger[i].ID = string(rune('a' + i))
	}
	recent := Recent(ledger)
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, "a", recent[0].ID)
	assert.Len(t, Recent(ledger[:2]), 2)
}

func TestRealActivities(t *testing.T) {
	ledger := append(SampleActivities(time.Now()), activity("waste", 1, "2025-01-01"))
	got := RealActivities(ledger)
	require.Len(t, got, 1)
	assert.Equal(t, "waste", got[0].Type)
}
