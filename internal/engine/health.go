package engine

import "math"

// Goal health thresholds, as a percentage of the monthly carbon goal used.
const (
	// HealthThresholdWarning is the share of the goal at which health becomes warning.
	HealthThresholdWarning = 80.0

	// HealthThresholdCritical is the share of the goal at which health becomes critical.
	HealthThresholdCritical = 90.0

	// HealthThresholdExceeded is the share of the goal at which health becomes exceeded.
	HealthThresholdExceeded = 100.0
)

// GoalHealth classifies monthly carbon against the goal.
type GoalHealth string

// Goal health values, from best to worst.
const (
	HealthUnspecified GoalHealth = "unspecified"
	HealthOK          GoalHealth = "ok"
	HealthWarning     GoalHealth = "warning"
	HealthCritical    GoalHealth = "critical"
	HealthExceeded    GoalHealth = "exceeded"
)

// HealthFromPercentage classifies a goal utilization percentage.
//
//   - ok: below 80%
//   - warning: 80-89%
//   - critical: 90-99%
//   - exceeded: 100% and above
func HealthFromPercentage(percentageUsed float64) GoalHealth {
	switch {
	case math.IsNaN(percentageUsed):
		return HealthUnspecified
	case percentageUsed >= HealthThresholdExceeded:
		return HealthExceeded
	case percentageUsed >= HealthThresholdCritical:
		return HealthCritical
	case percentageUsed >= HealthThresholdWarning:
		return HealthWarning
	default:
		return HealthOK
	}
}

// GoalUsage is monthly carbon measured against the user's goal.
type GoalUsage struct {
	Used       float64    `json:"used"`
	Goal       float64    `json:"goal"`
	Percentage float64    `json:"percentage"`
	Remaining  float64    `json:"remaining"`
	Health     GoalHealth `json:"health"`
}

// CalculateGoalUsage measures carbon against goal. A goal of zero or less has
// no defined usage and reports HealthUnspecified.
func CalculateGoalUsage(carbon, goal float64) GoalUsage {
	u := GoalUsage{Used: carbon, Goal: goal, Health: HealthUnspecified}
	if goal <= 0 || math.IsNaN(goal) {
		return u
	}
	u.Percentage = carbon / goal * 100
	u.Remaining = math.Max(0, goal-carbon)
	u.Health = HealthFromPercentage(u.Percentage)
	return u
}
