package greenops

import (
	"context"
	"fmt"
	"math"

	"github.com/rshade/ecotrack/internal/logging"
)

type phrasing struct {
	distanceUnit string
	labels       [4]string
	display      string
	compact      string
}

//nolint:gochecknoglobals // Fixed display strings per locale.
var phrasings = map[Locale]phrasing{
	LocaleFrench: {
		distanceUnit: "km",
		labels: [4]string{
			"km en voiture",
			"recharges de smartphone",
			"arbres plantés (10 ans)",
			"jours d'électricité d'un foyer",
		},
		display: "Équivalent à ~%s km en voiture ou ~%s recharges de smartphone",
		compact: "(≈ %s km, %s recharges)",
	},
	LocaleEnglish: {
		distanceUnit: "mi",
		labels: [4]string{
			"miles driven",
			"smartphones charged",
			"tree seedlings grown for 10 years",
			"days of home electricity",
		},
		display: "Equivalent to driving ~%s miles or charging ~%s smartphones",
		compact: "(≈ %s mi, %s phones)",
	},
}

// Calculate expresses input as driving distance, smartphone charges, tree
// seedlings and home electricity days, formatted with f.
//
// Inputs below MinEquivalencyThresholdKg give an empty output and no error.
// Invalid units and negative values are returned as errors.
func Calculate(input CarbonInput, f *Formatter) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}
	if f == nil {
		f = NewFormatter(DefaultLocale)
	}
	p := phrasings[f.Locale()]

	distance := kg / EPAMilesDrivenFactor
	if f.Locale() == LocaleFrench {
		distance *= KmPerMile
	}
	values := [4]float64{
		distance,
		kg / EPASmartphoneChargeFactor,
		kg / EPATreeSeedlingFactor,
		kg / EPAHomeDayFactor,
	}

	results := make([]EquivalencyResult, 0, len(values))
	for i, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           EquivalencyType(i),
			Value:          v,
			FormattedValue: f.equivalency(v),
			Label:          p.labels[i],
		})
	}

	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: fmt.Sprintf(p.display, results[0].FormattedValue, results[1].FormattedValue),
		CompactText: fmt.Sprintf(p.compact, results[0].FormattedValue, results[1].FormattedValue),
	}, nil
}

// Describe returns the display line for a total in kg CO2e, or "" when the
// total is too small or cannot be expressed. Failures are logged, not returned.
func Describe(ctx context.Context, kg float64, f *Formatter) string {
	out, err := Calculate(CarbonInput{Value: kg, Unit: "kg"}, f)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "greenops").
			Err(err).
			Float64("kg", kg).
			Msg("equivalency calculation failed")
		return ""
	}
	if out.IsEmpty {
		return ""
	}
	return out.DisplayText
}
