package tracker

import (
	"math"
	"time"

	"github.com/rshade/ecotrack/internal/factors"
)

// TrendMonths is the length of the monthly trend window.
const TrendMonths = 6

// Illustrative values shown when there is nothing real to chart.
//
//nolint:gochecknoglobals // Read-only sample series.
var (
	placeholderBreakdown = []float64{35, 28, 20, 10, 7}
	placeholderCarbon    = []float64{45, 52, 38, 41, 35, 42}
	placeholderEnergy    = []float64{180, 195, 165, 172, 158, 185}
)

// Bucket is one category slice of the breakdown.
type Bucket struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Carbon   float64 `json:"carbon"`
}

// Breakdown is the all-time carbon split by category. When IsPlaceholder is
// set the buckets are sample values and not derived from the ledger.
type Breakdown struct {
	Buckets       []Bucket `json:"buckets"`
	IsPlaceholder bool     `json:"isPlaceholder"`
}

// Total returns the sum of the bucket values.
func (b Breakdown) Total() float64 {
	var t float64
	for _, bk := range b.Buckets {
		t += bk.Carbon
	}
	return t
}

// CategoryBreakdown sums carbon per category over the whole ledger and drops
// empty buckets. If every bucket is empty the placeholder split is returned.
func CategoryBreakdown(activities []Activity) Breakdown {
	sums := make(map[string]float64, len(factors.Categories()))
	for _, a := range activities {
		if factors.IsCategory(a.Type) {
			sums[a.Type] += a.CarbonFootprint
		}
	}

	var out Breakdown
	for _, c := range factors.Categories() {
		if sums[c] > 0 {
			out.Buckets = append(out.Buckets, Bucket{
				Category: c,
				Label:    factors.CategoryLabel(c),
				Carbon:   Round2(sums[c]),
			})
		}
	}
	if len(out.Buckets) > 0 {
		return out
	}

	out.IsPlaceholder = true
	for i, c := range factors.Categories() {
		out.Buckets = append(out.Buckets, Bucket{
			Category: c,
			Label:    factors.CategoryLabel(c),
			Carbon:   placeholderBreakdown[i],
		})
	}
	return out
}

// MonthPoint is one month of the trend series.
type MonthPoint struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Label  string     `json:"label"`
	Carbon float64    `json:"carbon"`
	Energy float64    `json:"energy"`
}

// Trend is the carbon and energy series for the trailing months, oldest first.
type Trend struct {
	Points        []MonthPoint `json:"points"`
	IsPlaceholder bool         `json:"isPlaceholder"`
}

// monthLabels are the short French month names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var monthLabels = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// MonthLabel returns the short French name of m.
func MonthLabel(m time.Month) string {
	return monthLabels[(int(m)-1+12)%12]
}

// MonthlyTrend computes the trailing TrendMonths months ending with now's month.
// Carbon is rounded to two decimals and energy to whole kWh per month. When
// every month has zero carbon the sample series is substituted.
func MonthlyTrend(activities []Activity, now time.Time) Trend {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	points := make([]MonthPoint, TrendMonths)
	for i := range TrendMonths {
		ref := first.AddDate(0, i-(TrendMonths-1), 0)
		points[i] = MonthPoint{Year: ref.Year(), Month: ref.Month(), Label: MonthLabel(ref.Month())}

		var carbon, energy float64
		for _, a := range activities {
			if !inMonth(a, ref) {
				continue
			}
			carbon += a.CarbonFootprint
			if factors.CountsAsEnergy(a.Type) {
				energy += a.Value
			}
		}
		points[i].Carbon = Round2(carbon)
		points[i].Energy = math.Round(energy)
	}

	for _, p := range points {
		if p.Carbon != 0 {
			return Trend{Points: points}
		}
	}

	for i := range points {
		points[i].Carbon = placeholderCarbon[i]
		points[i].Energy = placeholderEnergy[i]
	}
	return Trend{Points: points, IsPlaceholder: true}
}
