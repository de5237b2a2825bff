package tracker

import (
	"time"

	"github.com/rshade/ecotrack/internal/factors"
)

// SampleActivities returns the illustrative ledger shown to new users. Every
// record is flagged as a placeholder so reducers can keep it apart from real data.
func SampleActivities(now time.Time) []Activity {
	samples := []Activity{
		{ID: "sample-1", Type: factors.CategoryTransport, Description: "Trajet domicile-travail", Value: 25, Unit: "km", Date: "2024-01-20"},
		{ID: "sample-2", Type: factors.CategoryElectricity, Description: "Consommation électrique", Value: 120, Unit: "kwh", Date: "2024-01-19"},
		{ID: "sample-3", Type: factors.CategoryHeating, Description: "Chauffage gaz", Value: 80, Unit: "kwh", Date: "2024-01-18"},
	}
	for i := range samples {
		samples[i] = Recompute(samples[i])
		samples[i].Timestamp = now.UTC()
		samples[i].IsPlaceholder = true
	}
	return samples
}

// WithSamples returns s with the sample ledger loaded when it holds no activities.
func WithSamples(s State, now time.Time) State {
	if len(s.Activities) > 0 {
		return s
	}
	out := s.Clone()
	out.Activities = SampleActivities(now)
	return out
}

// QuickAction returns the prefilled input for a one-click activity.
func QuickAction(category, description string) (ActivityInput, bool) {
	var value float64
	switch category {
	case factors.CategoryTransport:
		value = 10
	case factors.CategoryElectricity:
		value = 50
	case factors.CategoryHeating:
		value = 30
	default:
		return ActivityInput{}, false
	}
	return ActivityInput{
		Type:        category,
		Description: description,
		Value:       value,
		Unit:        factors.DefaultUnit(category),
	}, true
}
