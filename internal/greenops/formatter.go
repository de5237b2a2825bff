package greenops

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers with the grouping and decimal conventions of a
// locale. It is safe for concurrent use.
type Formatter struct {
	locale  Locale
	printer *message.Printer
	decimal string
	million string
	billion string
}

// NewFormatter returns a formatter for loc. Unknown locales fall back to
// DefaultLocale.
func NewFormatter(loc Locale) *Formatter {
	switch loc {
	case LocaleEnglish:
		return &Formatter{
			locale:  LocaleEnglish,
			printer: message.NewPrinter(language.English),
			decimal: ".",
			million: "million",
			billion: "billion",
		}
	default:
		return &Formatter{
			locale:  LocaleFrench,
			printer: message.NewPrinter(language.French),
			decimal: ",",
			million: "million",
			billion: "milliard",
		}
	}
}

// Locale reports the formatter's locale.
func (f *Formatter) Locale() Locale {
	return f.locale
}

// Number formats an integer with thousand separators: 18248 is "18,248" in
// English and "18 248" in French.
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Float formats v rounded to precision decimals with thousand separators in
// the integer part.
func (f *Formatter) Float(v float64, precision int) string {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(v*multiplier) / multiplier

	if precision <= 0 {
		return f.Number(int64(rounded))
	}

	formatted := fmt.Sprintf("%.*f", precision, rounded)
	intPart, frac, ok := strings.Cut(formatted, ".")
	if !ok {
		return formatted
	}

	negative := strings.HasPrefix(intPart, "-")
	n, err := parseIntPart(strings.TrimPrefix(intPart, "-"))
	if err != nil {
		return formatted
	}
	grouped := f.Number(n)
	if negative {
		grouped = "-" + grouped
	}
	return grouped + f.decimal + frac
}

// parseIntPart parses an unsigned run of ASCII digits.
func parseIntPart(s string) (int64, error) {
	const base = 10
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid character: %c", c)
		}
		n = n*base + int64(c-'0')
	}
	return n, nil
}

// Large abbreviates values at or above LargeNumberThreshold as "~X.X million"
// or "~X.X billion" in the formatter's language. Smaller values are rounded
// and grouped.
func (f *Formatter) Large(v float64) string {
	switch {
	case v >= BillionThreshold:
		return "~" + f.Float(v/BillionThreshold, 1) + " " + f.billion
	case v >= LargeNumberThreshold:
		return "~" + f.Float(v/LargeNumberThreshold, 1) + " " + f.million
	default:
		return f.Number(int64(math.Round(v)))
	}
}

// equivalency formats an equivalency count, abbreviating very large ones.
func (f *Formatter) equivalency(v float64) string {
	if v >= LargeNumberThreshold {
		return f.Large(v)
	}
	return f.Number(int64(math.Round(v)))
}
