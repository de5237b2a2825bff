package tracker

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/ecotrack/internal/factors"
)

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Footprint is the derived carbon of a single activity.
type Footprint struct {
	Carbon  float64 `json:"carbon"`
	Factor  float64 `json:"factor"`
	Quality Quality `json:"quality"`
	Issues  []Issue `json:"issues,omitempty"`
}

// CalculateFootprint applies the emission factor of category to value.
// Unknown categories contribute zero and are reported as an issue. Unknown or
// absent transport modes and heating sources use the car and gas rates.
func CalculateFootprint(category, variant string, value float64) Footprint {
	factor, fellBack, known := factors.EmissionFactor(category, variant)
	fp := Footprint{
		Carbon:  Round2(value * factor),
		Factor:  factor,
		Quality: QualityMeasured,
	}

	switch {
	case !known:
		fp.Quality = QualityDefaulted
		fp.Issues = append(fp.Issues, Issue{Field: "type", Reason: fmt.Sprintf("unknown category %q counts as zero", category)})
	case fellBack && category == factors.CategoryTransport:
		fp.Quality = QualityDefaulted
		fp.Issues = append(fp.Issues, Issue{Field: "mode", Reason: "transport mode defaulted to " + factors.DefaultTransportMode})
	case fellBack && category == factors.CategoryHeating:
		fp.Quality = QualityDefaulted
		fp.Issues = append(fp.Issues, Issue{Field: "mode", Reason: "heating source defaulted to " + factors.DefaultHeatingSource})
	}
	return fp
}

// Recompute returns a with its carbon footprint derived again from its inputs.
func Recompute(a Activity) Activity {
	a.CarbonFootprint = CalculateFootprint(a.Type, a.Mode, a.Value).Carbon
	return a
}

// ParseValue reads a numeric form field. Empty or unparseable text yields 0
// and an issue, matching the always-computable form contract.
func ParseValue(field, raw string) (float64, *Issue) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, &Issue{Field: field, Reason: "missing value defaulted to 0"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &Issue{Field: field, Reason: fmt.Sprintf("non-numeric value %q defaulted to 0", raw)}
	}
	return v, nil
}

// ParseDate parses an activity date in loc. It accepts YYYY-MM-DD and RFC3339.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.In(loc), nil
}

// ValidatedInput is an ActivityInput after validation and defaulting.
type ValidatedInput struct {
	Input  ActivityInput
	Issues []Issue
}

// ValidateInput checks in and fills the documented defaults: unit from the
// category, date from now, description from the category label. When strict is
// set an unknown category is an error; otherwise it is kept and reported.
func ValidateInput(in ActivityInput, strict bool, now time.Time) (ValidatedInput, error) {
	out := ValidatedInput{Input: in}
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Mode = strings.ToLower(strings.TrimSpace(in.Mode))

	if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
		return out, ErrInvalidValue
	}
	if in.Value < 0 {
		return out, fmt.Errorf("%w: %g", ErrNegativeValue, in.Value)
	}

	// Non-strict callers keep the record; CalculateFootprint reports the zero contribution.
	if strict && !factors.IsCategory(in.Type) {
		return out, fmt.Errorf("%w: %q", ErrUnknownCategory, in.Type)
	}

	if in.Unit == "" {
		in.Unit = factors.DefaultUnit(in.Type)
	}

	if in.Date == "" {
		in.Date = now.Format(DateLayout)
		out.Issues = append(out.Issues, Issue{Field: "date", Reason: "date defaulted to today"})
	} else if _, err := ParseDate(in.Date, now.Location()); err != nil {
		return out, err
	}

	if strings.TrimSpace(in.Description) == "" {
		in.Description = factors.CategoryLabel(in.Type)
	}

	out.Input = in
	return out, nil
}

// NewActivity builds a ledger record from a validated input. The footprint is
// computed here and nowhere else.
func NewActivity(id string, v ValidatedInput, now time.Time) (Activity, Footprint) {
	fp := CalculateFootprint(v.Input.Type, v.Input.Mode, v.Input.Value)
	return Activity{
		ID:              id,
		Type:            v.Input.Type,
		Mode:            v.Input.Mode,
		Description:     v.Input.Description,
		Value:           v.Input.Value,
		Unit:            v.Input.Unit,
		Date:            v.Input.Date,
		CarbonFootprint: fp.Carbon,
		Timestamp:       now.UTC(),
	}, fp
}
