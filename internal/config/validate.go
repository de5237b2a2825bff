package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/rshade/ecotrack/internal/logging"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrInvalidConfig indicates a value outside its allowed range or set.
	ErrInvalidConfig = constError("invalid configuration")

	// ErrUnknownKey indicates a dotted key that names no setting.
	ErrUnknownKey = constError("unknown configuration key")
)

//nolint:gochecknoglobals // Allowed value sets.
var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validFormats = []string{logging.FormatConsole, logging.FormatJSON}
	validOutputs = []string{FormatTable, FormatJSON}
	validLocales = []string{"fr", "en"}
)

// Validate checks every section and returns all problems joined. A monthly
// goal of zero or less is accepted and yields an eco score of 0.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if !slices.Contains(validLevels, c.Logging.Level) {
		bad("logging.level %q (want one of %v)", c.Logging.Level, validLevels)
	}
	if !slices.Contains(validFormats, c.Logging.Format) {
		bad("logging.format %q (want one of %v)", c.Logging.Format, validFormats)
	}
	if math.IsNaN(c.Tracker.MonthlyGoal) || math.IsInf(c.Tracker.MonthlyGoal, 0) {
		bad("tracker.monthly_goal must be finite")
	}
	if c.GreenIT.EnergyPrice < 0 || math.IsNaN(c.GreenIT.EnergyPrice) {
		bad("greenit.energy_price %v must not be negative", c.GreenIT.EnergyPrice)
	}
	if c.GreenIT.CarbonFactor < 0 || math.IsNaN(c.GreenIT.CarbonFactor) {
		bad("greenit.carbon_factor %v must not be negative", c.GreenIT.CarbonFactor)
	}
	if c.GreenIT.Currency == "" {
		bad("greenit.currency must not be empty")
	}
	if !slices.Contains(validOutputs, c.Output.DefaultFormat) {
		bad("output.default_format %q (want one of %v)", c.Output.DefaultFormat, validOutputs)
	}
	if !slices.Contains(validLocales, c.Output.Locale) {
		bad("output.locale %q (want one of %v)", c.Output.Locale, validLocales)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 6 {
		bad("output.precision %d must be between 0 and 6", c.Output.Precision)
	}
	return errors.Join(errs...)
}
