package tracker

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.InDelta(t, 5.25, Round2(25*0.21), 1e-9)
	assert.InDelta(t, 0.01, Round2(0.005), 1e-9)
	assert.InDelta(t, 1.23, Round2(1.234), 1e-9)
	assert.InDelta(t, 0.0, Round2(0), 1e-9)
}

func TestCalculateFootprint(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		variant     string
		value       float64
		wantCarbon  float64
		wantQuality Quality
		wantIssues  int
	}{
		{"electricity", "electricity", "", 120, 60, QualityMeasured, 0},
		{"transport default car", "transport", "", 25, 5.25, QualityDefaulted, 1},
		{"transport train", "transport", "train", 100, 4, QualityMeasured, 0},
		{"heating default gas", "heating", "", 80, 14.4, QualityDefaulted, 1},
		{"heating oil", "heating", "oil", 10, 2.5, QualityMeasured, 0},
		{"water", "water", "", 150, 0.15, QualityMeasured, 0},
		{"waste", "waste", "", 3, 1.5, QualityMeasured, 0},
		{"unknown category is zero", "food", "", 10, 0, QualityDefaulted, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := CalculateFootprint(tt.category, tt.variant, tt.value)
			assert.InDelta(t, tt.wantCarbon, fp.Carbon, 1e-9)
			assert.Equal(t, tt.wantQuality, fp.Quality)
			assert.Len(t, fp.Issues, tt.wantIssues)
		})
	}
}

func TestCalculateFootprint_ElectricityProperty(t *testing.T) {
	for _, v := range []float64{0, 0.01, 1, 3.33, 9.99, 120, 1234.567, 1e6} {
		fp := CalculateFootprint("electricity", "", v)
		assert.InDelta(t, math.Round(v*0.5*100)/100, fp.Carbon, 1e-9, "value %v", v)
	}
}

func TestRecompute(t *testing.T) {
	a := Activity{Type: "electricity", Value: 10, CarbonFootprint: 999}
	assert.InDelta(t, 5.0, Recompute(a).CarbonFootprint, 1e-9)
}

func TestParseValue(t *testing.T) {
	v, issue := ParseValue("value", "12.5")
	assert.InDelta(t, 12.5, v, 1e-9)
	assert.Nil(t, issue)

	v, issue = ParseValue("value", "12,5")
	assert.InDelta(t, 12.5, v, 1e-9)
	assert.Nil(t, issue)

	v, issue = ParseValue("value", "")
	assert.Zero(t, v)
	require.NotNil(t, issue)
	assert.Equal(t, "value", issue.Field)

	v, issue = ParseValue("value", "abc")
	assert.Zero(t, v)
	assert.NotNil(t, issue)

	_, issue = ParseValue("value", "NaN")
	assert.NotNil(t, issue)
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	d, err := ParseDate("2024-01-20", loc)
	require.NoError(t, err)
	assert.Equal(t, 20, d.Day())
	assert.Equal(t, loc, d.Location())

	d, err = ParseDate("2024-01-31T23:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = ParseDate("20/01/2024", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidateInput(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("fills defaults", func(t *testing.T) {
		v, err := ValidateInput(ActivityInput{Type: " Transport ", Value: 12}, false, now)
		require.NoError(t, err)
		assert.Equal(t, "transport", v.Input.Type)
		assert.Equal(t, "km", v.Input.Unit)
		assert.Equal(t, "2025-03-15", v.Input.Date)
		assert.Equal(t, "Transport", v.Input.Description)
		require.Len(t, v.Issues, 1)
		assert.Equal(t, "date", v.Issues[0].Field)
	})

	t.Run("negative value", func(t *testing.T) {
		_, err := ValidateInput(ActivityInput{Type: "water", Value: -1}, false, now)
		assert.ErrorIs(t, err, ErrNegativeValue)
	})

	t.Run("infinite value", func(t *testing.T) {
		_, err := ValidateInput(ActivityInput{Type: "water", Value: math.Inf(1)}, false, now)
		assert.True(t, errors.Is(err, ErrInvalidValue))
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := ValidateInput(ActivityInput{Type: "water", Value: 1, Date: "yesterday"}, false, now)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown category lenient", func(t *testing.T) {
		v, err := ValidateInput(ActivityInput{Type: "food", Value: 1, Date: "2025-03-01"}, false, now)
		require.NoError(t, err)
		assert.Equal(t, "food", v.Input.Type)
	})

	t.Run("unknown category strict", func(t *testing.T) {
		_, err := ValidateInput(ActivityInput{Type: "food", Value: 1}, true, now)
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})
}

func TestNewActivity(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	v, err := ValidateInput(ActivityInput{Type: "electricity", Value: 8, Description: "Lampe"}, false, now)
	require.NoError(t, err)

	a, fp := NewActivity("id-1", v, now)
	assert.Equal(t, "id-1", a.ID)
	assert.InDelta(t, 4.0, a.CarbonFootprint, 1e-9)
	assert.InDelta(t, fp.Carbon, a.CarbonFootprint, 1e-9)
	assert.Equal(t, "kwh", a.Unit)
	assert.Equal(t, now, a.Timestamp)
	assert.False(t, a.IsPlaceholder)
}
