// Package metrics exposes the latest engine snapshots as Prometheus gauges on
// a private registry and renders them in the text exposition format.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/ledger"
)

const namespace = "ecotrack"

// Collector holds the gauges. Observe methods overwrite the previous values.
type Collector struct {
	registry *prometheus.Registry

	monthlyCarbon  prometheus.Gauge
	monthlyEnergy  prometheus.Gauge
	monthlySavings prometheus.Gauge
	ecoScore       prometheus.Gauge
	goalUsage      prometheus.Gauge
	activities     prometheus.Gauge
	level          prometheus.Gauge
	xp             prometheus.Gauge
	categoryCarbon *prometheus.GaugeVec

	slotEnergy      *prometheus.GaugeVec
	slotCarbon      *prometheus.GaugeVec
	slotUtilization *prometheus.GaugeVec
	totalEnergy     prometheus.Gauge
	totalCarbon     prometheus.Gauge
	totalCost       *prometheus.GaugeVec
	efficiency      prometheus.Gauge

	ledgerRecords *prometheus.GaugeVec
}

func gauge(subsystem, name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

func gaugeVec(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

// NewCollector registers every gauge on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		monthlyCarbon:  gauge("tracker", "monthly_carbon_kg", "Carbon footprint of the current month in kg CO2."),
		monthlyEnergy:  gauge("tracker", "monthly_energy_kwh", "Electricity and heating energy of the current month in kWh."),
		monthlySavings: gauge("tracker", "monthly_savings_kg", "Estimated carbon savings of the current month in kg CO2."),
		ecoScore:       gauge("tracker", "eco_score", "Eco score from 0 to 100."),
		goalUsage:      gauge("tracker", "goal_usage_percent", "Share of the monthly carbon goal used."),
		activities:     gauge("tracker", "activities", "Number of real activities in the ledger."),
		level:          gauge("tracker", "level", "Gamification level."),
		xp:             gauge("tracker", "xp", "Experience points earned from challenges."),
		categoryCarbon: gaugeVec("tracker", "category_carbon_kg", "All-time carbon per activity category in kg CO2.", "category"),

		slotEnergy:      gaugeVec("greenit", "slot_energy_kwh", "Monthly energy of a calculation slot in kWh.", "slot"),
		slotCarbon:      gaugeVec("greenit", "slot_carbon_kg", "Monthly carbon of a calculation slot in kg CO2.", "slot"),
		slotUtilization: gaugeVec("greenit", "slot_utilization_percent", "Load figure of a calculation slot.", "slot"),
		totalEnergy:     gauge("greenit", "energy_kwh", "Monthly energy over all slots in kWh."),
		totalCarbon:     gauge("greenit", "carbon_kg", "Monthly carbon over all slots in kg CO2."),
		totalCost:       gaugeVec("greenit", "cost", "Monthly cost over all slots.", "currency"),
		efficiency:      gauge("greenit", "efficiency", "Mean efficiency score of the development and network slots."),

		ledgerRecords: gaugeVec("ledger", "records", "Ledger dispatcher outcomes for this process.", "outcome"),
	}

	c.registry.MustRegister(
		c.monthlyCarbon, c.monthlyEnergy, c.monthlySavings, c.ecoScore, c.goalUsage,
		c.activities, c.level, c.xp, c.categoryCarbon,
		c.slotEnergy, c.slotCarbon, c.slotUtilization,
		c.totalEnergy, c.totalCarbon, c.totalCost, c.efficiency,
		c.ledgerRecords,
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveTracker records an EcoTracker snapshot. Placeholder breakdowns are
// not exported.
func (c *Collector) ObserveTracker(s engine.TrackerSnapshot) {
	c.monthlyCarbon.Set(s.Stats.TotalCarbon)
	c.monthlyEnergy.Set(s.Stats.TotalEnergy)
	c.monthlySavings.Set(s.Stats.TotalSavings)
	c.ecoScore.Set(float64(s.Stats.EcoScore))
	c.goalUsage.Set(s.Goal.Percentage)
	c.activities.Set(float64(s.ActivityCount))
	c.level.Set(float64(s.Level))
	c.xp.Set(float64(s.XP))

	c.categoryCarbon.Reset()
	if s.Breakdown.IsPlaceholder {
		return
	}
	for _, b := range s.Breakdown.Buckets {
		c.categoryCarbon.WithLabelValues(b.Category).Set(b.Carbon)
	}
}

// ObserveGreenIT records a Green IT snapshot. Empty slots have no series.
func (c *Collector) ObserveGreenIT(s engine.GreenITSnapshot) {
	c.slotEnergy.Reset()
	c.slotCarbon.Reset()
	c.slotUtilization.Reset()
	for _, slot := range greenit.Slots() {
		r := s.Calculations.Get(slot)
		if r == nil {
			continue
		}
		c.slotEnergy.WithLabelValues(string(slot)).Set(r.Energy)
		c.slotCarbon.WithLabelValues(string(slot)).Set(r.Carbon)
	}
	for _, n := range s.Status {
		c.slotUtilization.WithLabelValues(string(n.Slot)).Set(float64(n.Utilization))
	}

	c.totalEnergy.Set(s.Totals.Energy)
	c.totalCarbon.Set(s.Totals.Carbon)
	c.totalCost.Reset()
	c.totalCost.WithLabelValues(s.Settings.Currency).Set(s.Totals.Cost)
	c.efficiency.Set(s.Totals.Efficiency)
}

// ObserveLedger records dispatcher counters.
func (c *Collector) ObserveLedger(st ledger.DispatchStats) {
	c.ledgerRecords.WithLabelValues("submitted").Set(float64(st.Submitted))
	c.ledgerRecords.WithLabelValues("recorded").Set(float64(st.Recorded))
	c.ledgerRecords.WithLabelValues("failed").Set(float64(st.Failed))
	c.ledgerRecords.WithLabelValues("dropped").Set(float64(st.Dropped))
}

// WriteText gathers the registry and writes it in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
