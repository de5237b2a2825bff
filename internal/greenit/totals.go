package greenit

import (
	"fmt"
	"math"
)

// Totals is the dashboard aggregate over the four slots.
type Totals struct {
	Energy     float64 `json:"energy"`
	Carbon     float64 `json:"carbon"`
	Cost       float64 `json:"cost"`
	Efficiency float64 `json:"efficiency"`
	// Slots counts the slots that hold a result.
	Slots int `json:"slots"`
}

// ComputeTotals folds the current slot results. Energy, carbon and cost are
// summed over filled slots; efficiency is the rounded mean of the non-zero
// efficiencies, or 0 when there are none. The fold is order-independent.
func ComputeTotals(c Calculations) Totals {
	var (
		t          Totals
		effSum     float64
		effDefined int
	)
	for _, slot := range Slots() {
		r := c.Get(slot)
		if r == nil {
			continue
		}
		t.Slots++
		t.Energy += r.Energy
		t.Carbon += r.Carbon
		t.Cost += r.CostValue()
		if r.Efficiency != nil && *r.Efficiency != 0 {
			effSum += *r.Efficiency
			effDefined++
		}
	}
	if effDefined > 0 {
		t.Efficiency = math.Round(effSum / float64(effDefined))
	}
	return t
}

// SidebarCarbon formats a carbon total in kg as tonnes with one decimal.
func SidebarCarbon(carbonKg float64) string {
	return fmt.Sprintf("%.1ft", carbonKg/1000)
}

// Load levels for the infrastructure status panel.
const (
	LoadHigh   = "high"
	LoadMedium = "medium"
	LoadLow    = "low"
)

// Utilization maps a slot's monthly energy to a 0..100 load figure and level.
func Utilization(energy float64) (int, string) {
	pct := int(math.Min(100, math.Round(energy/1000*10)))
	if pct < 0 {
		pct = 0
	}
	switch {
	case pct > 70:
		return pct, LoadHigh
	case pct > 40:
		return pct, LoadMedium
	default:
		return pct, LoadLow
	}
}

// NodeStatus is one row of the infrastructure status panel.
type NodeStatus struct {
	Slot        Slot    `json:"slot"`
	Label       string  `json:"label"`
	Energy      float64 `json:"energy"`
	Utilization int     `json:"utilization"`
	Level       string  `json:"level"`
}

// InfrastructureStatus lists a status row for every filled slot.
func InfrastructureStatus(c Calculations) []NodeStatus {
	var rows []NodeStatus
	for _, slot := range Slots() {
		r := c.Get(slot)
		if r == nil {
			continue
		}
		pct, level := Utilization(r.Energy)
		rows = append(rows, NodeStatus{
			Slot:        slot,
			Label:       slot.Label(),
			Energy:      r.Energy,
			Utilization: pct,
			Level:       level,
		})
	}
	return rows
}

// SplitPart is one wedge of the energy split chart.
type SplitPart struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// EnergySplit is the energy distribution across slots. When no slot holds a
// result the illustrative split is returned with IsPlaceholder set.
type EnergySplit struct {
	Parts         []SplitPart `json:"parts"`
	IsPlaceholder bool        `json:"isPlaceholder"`
}

// ComputeEnergySplit derives the energy distribution across filled slots.
func ComputeEnergySplit(c Calculations) EnergySplit {
	var parts []SplitPart
	for _, slot := range Slots() {
		r := c.Get(slot)
		if r == nil || r.Energy <= 0 {
			continue
		}
		parts = append(parts, SplitPart{Label: slot.Label(), Value: r.Energy})
	}
	if len(parts) == 0 {
		return EnergySplit{
			Parts: []SplitPart{
				{Label: "Data Center", Value: 45},
				{Label: "Cloud", Value: 30},
				{Label: "Réseau", Value: 15},
				{Label: "Autres", Value: 10},
			},
			IsPlaceholder: true,
		}
	}
	return EnergySplit{Parts: parts}
}

// Share returns each part's percentage of the whole.
func (s EnergySplit) Share() []float64 {
	var total float64
	for _, p := range s.Parts {
		total += p.Value
	}
	out := make([]float64, len(s.Parts))
	if total == 0 {
		return out
	}
	for i, p := range s.Parts {
		out[i] = p.Value / total * 100
	}
	return out
}
