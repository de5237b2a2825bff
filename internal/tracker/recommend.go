package tracker

import (
	"fmt"
	"math"

	"github.com/rshade/ecotrack/internal/factors"
)

// CyclingDistanceThreshold is the mean transport distance above which cycling is suggested.
const CyclingDistanceThreshold = 20.0

// Recommendation is a fixed advice payload produced by a rule.
type Recommendation struct {
	Rule        string `json:"rule"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// rule inspects the ledger and optionally emits a recommendation.
type rule struct {
	name  string
	apply func(activities []Activity) (Recommendation, bool)
}

// rules are evaluated in order; every matching rule contributes.
//
//nolint:gochecknoglobals // Read-only rule table.
var rules = []rule{
	{name: "cycling", apply: cyclingRule},
	{name: "lighting", apply: lightingRule},
}

func cyclingRule(activities []Activity) (Recommendation, bool) {
	var sum float64
	var n int
	for _, a := range activities {
		if a.Type == factors.CategoryTransport {
			sum += a.Value
			n++
		}
	}
	if n == 0 {
		return Recommendation{}, false
	}
	avg := sum / float64(n)
	if avg <= CyclingDistanceThreshold {
		return Recommendation{}, false
	}
	return Recommendation{
		Icon:  "bicycle",
		Title: "Privilégiez le vélo",
		Description: fmt.Sprintf("Vos trajets moyens de %dkm pourraient être effectués à vélo.",
			int(math.Round(avg))),
		Impact: "-60% CO₂",
	}, true
}

func lightingRule(activities []Activity) (Recommendation, bool) {
	for _, a := range activities {
		if a.Type == factors.CategoryElectricity {
			return Recommendation{
				Icon:        "lightbulb",
				Title:       "Optimisez votre éclairage",
				Description: "Remplacez vos ampoules par des LED pour réduire votre consommation.",
				Impact:      "-75% consommation",
			}, true
		}
	}
	return Recommendation{}, false
}

// defaultRecommendations is returned only when no rule matches.
func defaultRecommendations() []Recommendation {
	return []Recommendation{
		{
			Rule:        "start",
			Icon:        "leaf",
			Title:       "Commencez votre suivi",
			Description: "Enregistrez vos premières activités pour recevoir des conseils personnalisés.",
			Impact:      "Démarrage",
			IsDefault:   true,
		},
		{
			Rule:        "sorting",
			Icon:        "recycle",
			Title:       "Triez vos déchets",
			Description: "Le tri sélectif peut réduire significativement votre impact environnemental.",
			Impact:      "-30% déchets",
			IsDefault:   true,
		},
	}
}

// GenerateRecommendations runs every rule over the ledger in order.
func GenerateRecommendations(activities []Activity) []Recommendation {
	var out []Recommendation
	for _, r := range rules {
		if rec, ok := r.apply(activities); ok {
			rec.Rule = r.name
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		return defaultRecommendations()
	}
	return out
}
