// Package factors holds the static emission and power tables used by the
// EcoTracker and Green IT calculators.
//
// Every lookup has a defined fallback so that a missing key never propagates
// into arithmetic as NaN. Lookups report whether the fallback was used so
// callers can flag defaulted inputs.
package factors

// Activity categories tracked by EcoTracker.
const (
	CategoryTransport   = "transport"
	CategoryElectricity = "electricity"
	CategoryHeating     = "heating"
	CategoryWater       = "water"
	CategoryWaste       = "waste"
)

// Transport modes.
const (
	ModeCar   = "car"
	ModeBus   = "bus"
	ModeTrain = "train"
	ModePlane = "plane"
)

// Heating sources.
const (
	HeatingGas      = "gas"
	HeatingOil      = "oil"
	HeatingElectric = "electric"
)

// Default modes applied when an activity does not name one.
const (
	DefaultTransportMode = ModeCar
	DefaultHeatingSource = HeatingGas
)

// Emission factors in kg CO2 per unit of activity.
const (
	// ElectricityFactor is kg CO2 per kWh.
	ElectricityFactor = 0.5
	// WaterFactor is kg CO2 per liter.
	WaterFactor = 0.001
	// WasteFactor is kg CO2 per kg of waste.
	WasteFactor = 0.5
)

// transportFactors is kg CO2 per km.
//
//nolint:gochecknoglobals // Read-only lookup table.
var transportFactors = map[string]float64{
	ModeCar:   0.21,
	ModeBus:   0.08,
	ModeTrain: 0.04,
	ModePlane: 0.25,
}

// heatingFactors is kg CO2 per kWh.
//
//nolint:gochecknoglobals // Read-only lookup table.
var heatingFactors = map[string]float64{
	HeatingGas:      0.18,
	HeatingOil:      0.25,
	HeatingElectric: 0.5,
}

// Categories returns the tracked categories in display order.
func Categories() []string {
	return []string{CategoryTransport, CategoryElectricity, CategoryHeating, CategoryWater, CategoryWaste}
}

// IsCategory reports whether c is a tracked category.
func IsCategory(c string) bool {
	switch c {
	case CategoryTransport, CategoryElectricity, CategoryHeating, CategoryWater, CategoryWaste:
		return true
	default:
		return false
	}
}

// TransportFactor returns the factor for mode. Unknown or empty modes fall back to car.
func TransportFactor(mode string) (float64, bool) {
	if f, ok := transportFactors[mode]; ok {
		return f, false
	}
	return transportFactors[DefaultTransportMode], true
}

// HeatingFactor returns the factor for source. Unknown or empty sources fall back to gas.
func HeatingFactor(source string) (float64, bool) {
	if f, ok := heatingFactors[source]; ok {
		return f, false
	}
	return heatingFactors[DefaultHeatingSource], true
}

// EmissionFactor resolves the per-unit factor for an activity. The variant is
// the transport mode or heating source and is ignored for other categories.
// An unrecognized category yields 0 and known=false.
func EmissionFactor(category, variant string) (factor float64, fellBack, known bool) {
	switch category {
	case CategoryTransport:
		f, fb := TransportFactor(variant)
		return f, fb, true
	case CategoryElectricity:
		return ElectricityFactor, false, true
	case CategoryHeating:
		f, fb := HeatingFactor(variant)
		return f, fb, true
	case CategoryWater:
		return WaterFactor, false, true
	case CategoryWaste:
		return WasteFactor, false, true
	default:
		return 0, false, false
	}
}

// DefaultUnit returns the unit an activity value is expressed in.
func DefaultUnit(category string) string {
	switch category {
	case CategoryTransport:
		return "km"
	case CategoryElectricity, CategoryHeating:
		return "kwh"
	case CategoryWater:
		return "liters"
	case CategoryWaste:
		return "kg"
	default:
		return ""
	}
}

// CategoryLabel returns the French display label used in breakdowns.
func CategoryLabel(category string) string {
	switch category {
	case CategoryTransport:
		return "Transport"
	case CategoryElectricity:
		return "Électricité"
	case CategoryHeating:
		return "Chauffage"
	case CategoryWater:
		return "Eau"
	case CategoryWaste:
		return "Déchets"
	default:
		return category
	}
}

// CountsAsEnergy reports whether the activity value is an energy quantity in kWh.
func CountsAsEnergy(category string) bool {
	return category == CategoryElectricity || category == CategoryHeating
}
