package tracker

import (
	"math"
	"time"

	"github.com/rshade/ecotrack/internal/factors"
)

// SavingsRate is the share of monthly carbon reported as savings.
const SavingsRate = 0.05

// inMonth reports whether the activity date falls in the calendar month of ref,
// evaluated in ref's location. Unparseable dates are excluded.
func inMonth(a Activity, ref time.Time) bool {
	d, err := ParseDate(a.Date, ref.Location())
	if err != nil {
		return false
	}
	return d.Year() == ref.Year() && d.Month() == ref.Month()
}

// EcoScore maps monthly carbon against the goal to [0, 100]. A goal of zero or
// less leaves the ratio undefined and scores 0.
func EcoScore(totalCarbon, monthlyGoal float64) (score int, goalDefined bool) {
	if monthlyGoal <= 0 || math.IsNaN(monthlyGoal) {
		return 0, false
	}
	ratio := math.Max(0, 1-totalCarbon/monthlyGoal)
	return int(math.Min(100, math.Round(ratio*100))), true
}

// MonthlyStats folds the activities dated in now's calendar month. Sums are kept
// unrounded; only savings is rounded, as it is itself a display figure.
func MonthlyStats(activities []Activity, monthlyGoal float64, now time.Time) Stats {
	var s Stats
	for _, a := range activities {
		if !inMonth(a, now) {
			continue
		}
		s.ActivityCount++
		s.TotalCarbon += a.CarbonFootprint
		if factors.CountsAsEnergy(a.Type) {
			s.TotalEnergy += a.Value
		}
	}
	s.TotalSavings = Round2(s.TotalCarbon * SavingsRate)
	s.EcoScore, s.GoalDefined = EcoScore(s.TotalCarbon, monthlyGoal)
	return s
}
