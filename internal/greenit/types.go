// Package greenit implements the Green IT side of the engine: four independent
// infrastructure calculators, their improvement suggestions, and the reducers
// that fold the latest result of each calculation slot into dashboard totals.
package greenit

import (
	"fmt"
	"math"
	"time"
)

// Slot identifies one of the four calculation slots.
type Slot string

// Calculation slots.
const (
	SlotDatacenter  Slot = "datacenter"
	SlotCloud       Slot = "cloud"
	SlotDevelopment Slot = "development"
	SlotNetwork     Slot = "network"
)

// Slots returns every slot in display order.
func Slots() []Slot {
	return []Slot{SlotDatacenter, SlotCloud, SlotDevelopment, SlotNetwork}
}

// ParseSlot resolves a slot name.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots() {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

// Label returns the French display name of the slot.
func (s Slot) Label() string {
	switch s {
	case SlotDatacenter:
		return "Data Center"
	case SlotCloud:
		return "Cloud"
	case SlotDevelopment:
		return "Développement"
	case SlotNetwork:
		return "Réseau"
	default:
		return string(s)
	}
}

// Quality tells a presenter whether a result used defaulted inputs.
type Quality string

// Result qualities.
const (
	QualityMeasured  Quality = "measured"
	QualityDefaulted Quality = "defaulted"
)

// InputIssue records a form field that was missing, malformed or unknown and
// the default that replaced it.
type InputIssue struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Default string `json:"default,omitempty"`
}

// Component is one named energy term of a calculation.
type Component struct {
	Name   string  `json:"name"`
	Energy float64 `json:"energy"`
}

// Result is the latest calculation held by a slot. Energy is kWh per month,
// carbon kg CO2 per month, cost currency per month. Cost is set for datacenter
// and cloud, Efficiency for development and network.
type Result struct {
	Energy     float64      `json:"energy"`
	Carbon     float64      `json:"carbon"`
	Cost       *float64     `json:"cost,omitempty"`
	Efficiency *float64     `json:"efficiency,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
	Components []Component  `json:"components,omitempty"`
	Quality    Quality      `json:"quality,omitempty"`
	Issues     []InputIssue `json:"issues,omitempty"`
}

// Rounded returns r with energy, carbon and cost rounded to whole units for display.
func (r Result) Rounded() Result {
	out := r
	out.Energy = math.Round(r.Energy)
	out.Carbon = math.Round(r.Carbon)
	if r.Cost != nil {
		c := math.Round(*r.Cost)
		out.Cost = &c
	}
	return out
}

// CostValue returns the cost or 0 when the slot does not track one.
func (r Result) CostValue() float64 {
	if r.Cost == nil {
		return 0
	}
	return *r.Cost
}

// Priority ranks a suggestion.
type Priority string

// Suggestion priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is an improvement triggered by a threshold on a calculation.
// Savings is the estimated monthly reduction expressed in SavingsUnit.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Savings     float64  `json:"savings,omitempty"`
	SavingsUnit string   `json:"savingsUnit,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// Calculation bundles a slot result with the suggestions it triggered.
type Calculation struct {
	Slot        Slot         `json:"slot"`
	Result      Result       `json:"result"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Settings are the pricing and intensity parameters shared by the calculators.
type Settings struct {
	EnergyPrice  float64 `json:"energyPrice"`
	CarbonFactor float64 `json:"carbonFactor"`
	Currency     string  `json:"currency"`
}

// Default settings.
const (
	DefaultEnergyPrice  = 0.15
	DefaultCarbonFactor = 0.5
	DefaultCurrency     = "EUR"
)

// DefaultSettings returns the stock pricing parameters.
func DefaultSettings() Settings {
	return Settings{
		EnergyPrice:  DefaultEnergyPrice,
		CarbonFactor: DefaultCarbonFactor,
		Currency:     DefaultCurrency,
	}
}

// Input is a typed calculator form. Calculate never fails: missing values
// have already been replaced by their documented defaults.
type Input interface {
	Slot() Slot
	Calculate(settings Settings, now time.Time) Calculation
}

// Calculations holds at most one result per slot.
type Calculations struct {
	Datacenter  *Result `json:"datacenter"`
	Cloud       *Result `json:"cloud"`
	Development *Result `json:"development"`
	Network     *Result `json:"network"`
}

// Get returns the result held by slot, or nil.
func (c Calculations) Get(slot Slot) *Result {
	switch slot {
	case SlotDatacenter:
		return c.Datacenter
	case SlotCloud:
		return c.Cloud
	case SlotDevelopment:
		return c.Development
	case SlotNetwork:
		return c.Network
	default:
		return nil
	}
}

// With returns a copy of c whose slot holds r. The previous value is replaced, not merged.
func (c Calculations) With(slot Slot, r Result) Calculations {
	out := c
	switch slot {
	case SlotDatacenter:
		out.Datacenter = &r
	case SlotCloud:
		out.Cloud = &r
	case SlotDevelopment:
		out.Development = &r
	case SlotNetwork:
		out.Network = &r
	}
	return out
}

// Without returns a copy of c with slot cleared.
func (c Calculations) Without(slot Slot) Calculations {
	out := c
	switch slot {
	case SlotDatacenter:
		out.Datacenter = nil
	case SlotCloud:
		out.Cloud = nil
	case SlotDevelopment:
		out.Development = nil
	case SlotNetwork:
		out.Network = nil
	}
	return out
}

// LedgerEntry references a calculation recorded with the ledger sink.
type LedgerEntry struct {
	ID        string    `json:"id"`
	Type      Slot      `json:"type"`
	Data      Result    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the Green IT state tree.
type State struct {
	Calculations Calculations  `json:"calculations"`
	Totals       Totals        `json:"totals"`
	Settings     Settings      `json:"settings"`
	Transactions []LedgerEntry `json:"hederaTransactions,omitempty"`
}

// DefaultState returns empty slots with default settings.
func DefaultState() State {
	return State{Settings: DefaultSettings()}
}

// Clone returns a copy of s that shares no slices with it.
func (s State) Clone() State {
	out := s
	out.Transactions = append([]LedgerEntry(nil), s.Transactions...)
	return out
}
