// Package tracker implements the EcoTracker side of the engine: the per-activity
// footprint calculator, the monthly and category reducers, the six-month trend,
// the recommendation rules and the gamification rules.
//
// All functions are pure. They take state and an explicit clock reading and
// return new values; nothing here mutates its arguments.
package tracker

import "time"

// DateLayout is the calendar date format of Activity.Date.
const DateLayout = "2006-01-02"

// Default state values.
const (
	DefaultEcoScore    = 85
	DefaultMonthlyGoal = 500.0
	DefaultUserName    = "Utilisateur Éco"
	DefaultJoinDate    = "2024-01-01"
)

// RecentLimit is the number of activities shown as recent.
const RecentLimit = 5

// Quality tells a presenter how much to trust a derived figure.
type Quality string

const (
	// QualityMeasured means every input was supplied and recognized.
	QualityMeasured Quality = "measured"
	// QualityDefaulted means at least one input was missing or unknown and a documented default was used.
	QualityDefaulted Quality = "defaulted"
	// QualityPlaceholder means the figure is illustrative sample data, not derived from the user's records.
	QualityPlaceholder Quality = "placeholder"
)

// Issue records an input that was defaulted or ignored.
type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Activity is one logged consumption event. CarbonFootprint is always derived
// from (Type, Mode, Value) and is never accepted from the caller.
type Activity struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Mode            string    `json:"mode,omitempty"`
	Description     string    `json:"description"`
	Value           float64   `json:"value"`
	Unit            string    `json:"unit"`
	Date            string    `json:"date"`
	CarbonFootprint float64   `json:"carbonFootprint"`
	Timestamp       time.Time `json:"timestamp"`
	IsPlaceholder   bool      `json:"isPlaceholder,omitempty"`
}

// ActivityInput is the typed form submission for a new activity.
type ActivityInput struct {
	Type        string  `json:"type"`
	Mode        string  `json:"mode,omitempty"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// Stats is the monthly aggregate shown on the dashboard.
type Stats struct {
	TotalCarbon   float64 `json:"totalCarbon"`
	TotalEnergy   float64 `json:"totalEnergy"`
	TotalSavings  float64 `json:"totalSavings"`
	EcoScore      int     `json:"ecoScore"`
	ActivityCount int     `json:"activityCount"`
	GoalDefined   bool    `json:"goalDefined"`
}

// Settings are the user-editable preferences.
type Settings struct {
	Notifications  bool    `json:"notifications"`
	DailyReminders bool    `json:"dailyReminders"`
	MonthlyGoal    float64 `json:"monthlyGoal"`
}

// User is the profile section of the persisted state.
type User struct {
	Name     string   `json:"name"`
	JoinDate string   `json:"joinDate"`
	Settings Settings `json:"settings"`
}

// State is the EcoTracker state tree. Activities are ordered newest first.
type State struct {
	Activities []Activity `json:"activities"`
	Stats      Stats      `json:"stats"`
	User       User       `json:"user"`
}

// DefaultState returns a fresh state with the default profile and settings.
func DefaultState() State {
	return State{
		Activities: []Activity{},
		Stats:      Stats{EcoScore: DefaultEcoScore},
		User: User{
			Name:     DefaultUserName,
			JoinDate: DefaultJoinDate,
			Settings: Settings{
				Notifications:  true,
				DailyReminders: false,
				MonthlyGoal:    DefaultMonthlyGoal,
			},
		},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Activities = append([]Activity(nil), s.Activities...)
	if out.Activities == nil {
		out.Activities = []Activity{}
	}
	return out
}

// RealActivities returns the activities that are not placeholders, preserving order.
func RealActivities(activities []Activity) []Activity {
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if !a.IsPlaceholder {
			out = append(out, a)
		}
	}
	return out
}

// Recent returns at most RecentLimit activities from the head of the ledger.
func Recent(activities []Activity) []Activity {
	n := min(len(activities), RecentLimit)
	return append([]Activity(nil), activities[:n]...)
}
