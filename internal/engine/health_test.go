package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthFromPercentage(t *testing.T) {
	tests := []struct {
		pct  float64
		want GoalHealth
	}{
		{-5, HealthOK},
		{0, HealthOK},
		{79.9, HealthOK},
		{80, HealthWarning},
		{89.99, HealthWarning},
		{90, HealthCritical},
		{99.9, HealthCritical},
		{100, HealthExceeded},
		{250, HealthExceeded},
		{math.NaN(), HealthUnspecified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HealthFromPercentage(tt.pct), "pct=%v", tt.pct)
	}
}

func TestCalculateGoalUsage(t *testing.T) {
	u := CalculateGoalUsage(450, 500)
	assert.InDelta(t, 90.0, u.Percentage, 1e-9)
	assert.InDelta(t, 50.0, u.Remaining, 1e-9)
	assert.Equal(t, HealthCritical, u.Health)

	over := CalculateGoalUsage(600, 500)
	assert.Zero(t, over.Remaining)
	assert.Equal(t, HealthExceeded, over.Health)

	undefined := CalculateGoalUsage(10, 0)
	assert.Equal(t, HealthUnspecified, undefined.Health)
	assert.Zero(t, undefined.Percentage)
}
