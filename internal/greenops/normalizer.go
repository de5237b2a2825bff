package greenops

import (
	"math"
	"strings"
)

// unitFactor returns the factor converting unit to kilograms. Matching is
// case-insensitive and accepts the CO2e suffixed forms.
func unitFactor(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gco2e", "gco2":
		return GramsToKg, true
	case "kg", "kgco2e", "kgco2", "kg co2", "kg co₂":
		return KgToKg, true
	case "t", "tco2e", "tco2":
		return TonsToKg, true
	case "lb", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon quantity to kilograms.
//
// It returns ErrNegativeValue for negative values, ErrInvalidUnit for unknown
// units and ErrCalculationOverflow for NaN, Inf or an overflowing product.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}
