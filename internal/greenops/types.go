// Package greenops turns carbon totals into relatable equivalencies such as
// distance driven or smartphones charged, using EPA published factors, and
// formats them for French or English display.
package greenops

import (
	"fmt"
	"strings"
)

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyDistanceDriven is distance in an average passenger vehicle.
	// Kilometres for French, miles for English.
	EquivalencyDistanceDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays is days of average home electricity use.
	EquivalencyHomeDays
)

func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyDistanceDriven:
		return "DistanceDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// Locale selects display language and number conventions.
type Locale string

const (
	LocaleFrench  Locale = "fr"
	LocaleEnglish Locale = "en"
)

// DefaultLocale matches the application's French interface.
const DefaultLocale = LocaleFrench

// ParseLocale accepts "fr" or "en", case-insensitively, plus region tags
// such as "fr-FR".
func ParseLocale(s string) (Locale, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch Locale(tag) {
	case LocaleFrench, LocaleEnglish:
		return Locale(tag), nil
	default:
		return "", fmt.Errorf("%w: %q (want fr or en)", ErrInvalidLocale, s)
	}
}

// CarbonInput is a carbon quantity to express as equivalencies.
type CarbonInput struct {
	Value float64 `json:"value"`
	// Unit is one of g, kg, t, lb, optionally suffixed CO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	InputKg float64             `json:"input_kg"`
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose line, e.g.
	// "Équivalent à ~1 257 km en voiture ou ~18 248 recharges de smartphone".
	DisplayText string `json:"display_text"`

	// CompactText is the short form for tables, e.g. "(≈ 1 257 km, 18 248 recharges)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
