package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// field binds a dotted key to a setting.
type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringField(p func(c *Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error {
			*p(c) = v
			return nil
		},
	}
}

func floatField(p func(c *Config) *float64) field {
	return field{
		get: func(c *Config) string { return strconv.FormatFloat(*p(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*p(c) = f
			return nil
		},
	}
}

func boolField(p func(c *Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*p(c) = b
			return nil
		},
	}
}

func intField(p func(c *Config) *int) field {
	return field{
		get: func(c *Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*p(c) = n
			return nil
		},
	}
}

//nolint:gochecknoglobals // Key table.
var fields = map[string]field{
	"logging.level":             stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":            stringField(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":              stringField(func(c *Config) *string { return &c.Logging.File }),
	"tracker.monthly_goal":      floatField(func(c *Config) *float64 { return &c.Tracker.MonthlyGoal }),
	"tracker.notifications":     boolField(func(c *Config) *bool { return &c.Tracker.Notifications }),
	"tracker.daily_reminders":   boolField(func(c *Config) *bool { return &c.Tracker.DailyReminders }),
	"tracker.strict_categories": boolField(func(c *Config) *bool { return &c.Tracker.StrictCategories }),
	"greenit.energy_price":      floatField(func(c *Config) *float64 { return &c.GreenIT.EnergyPrice }),
	"greenit.carbon_factor":     floatField(func(c *Config) *float64 { return &c.GreenIT.CarbonFactor }),
	"greenit.currency":          stringField(func(c *Config) *string { return &c.GreenIT.Currency }),
	"ledger.enabled":            boolField(func(c *Config) *bool { return &c.Ledger.Enabled }),
	"ledger.path":               stringField(func(c *Config) *string { return &c.Ledger.Path }),
	"output.default_format":     stringField(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"output.locale":             stringField(func(c *Config) *string { return &c.Output.Locale }),
	"output.precision":          intField(func(c *Config) *int { return &c.Output.Precision }),
}

// Keys returns every dotted key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key such as "greenit.energy_price".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value into the setting named by key and validates the result.
// On failure the configuration is left unchanged.
func (c *Config) Set(key, value string) error {
	f, ok := fields[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	next := *c
	if err := f.set(&next, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// List returns every key with its current value.
func (c *Config) List() map[string]string {
	out := make(map[string]string, len(fields))
	for k, f := range fields {
		out[k] = f.get(c)
	}
	return out
}
