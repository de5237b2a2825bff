package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/store"
)

// CalculateResult describes one Green IT calculation.
type CalculateResult struct {
	Calculation greenit.Calculation `json:"calculation"`
	Totals      greenit.Totals      `json:"totals"`
	// TransactionID is the ledger id of the recorded calculation.
	TransactionID string `json:"transactionId,omitempty"`
	// Submitted reports whether the record was handed to the ledger.
	Submitted bool `json:"submitted"`
}

// Calculate runs in with the document's Green IT settings, replaces the slot
// result, refreshes the totals and records the calculation. A ledger failure
// is logged and never affects the returned figures.
func (e *Engine) Calculate(ctx context.Context, doc store.Document, in greenit.Input) (store.Document, CalculateResult, error) {
	logger := operationLogger(ctx, "Calculate")
	now := e.now()

	calc, err := greenit.Calculate(in, doc.GreenIT.Settings, now)
	if err != nil {
		return doc, CalculateResult{}, err
	}

	out := doc.Clone()
	out.GreenIT.Calculations = out.GreenIT.Calculations.With(calc.Slot, calc.Result)
	out.GreenIT.Totals = greenit.ComputeTotals(out.GreenIT.Calculations)
	res := CalculateResult{Calculation: calc, Totals: out.GreenIT.Totals}

	rec, err := ledger.NewRecord(string(calc.Slot), calc.Result, now)
	if err != nil {
		logger.Warn().Err(err).Str("slot", string(calc.Slot)).Msg("calculation not recorded")
		return out, res, nil
	}
	out.GreenIT.Transactions = append(out.GreenIT.Transactions, greenit.LedgerEntry{
		ID:        rec.ID,
		Type:      calc.Slot,
		Data:      calc.Result,
		Timestamp: rec.Timestamp,
	})
	res.TransactionID = rec.ID

	if e.recorder != nil {
		if err = e.recorder.Submit(rec); err != nil {
			logger.Warn().Err(err).Str("tx_id", rec.ID).Msg("ledger submit failed")
		} else {
			res.Submitted = true
		}
	}

	logger.Debug().
		Str("slot", string(calc.Slot)).
		Float64("energy", calc.Result.Energy).
		Float64("carbon", calc.Result.Carbon).
		Str("quality", string(calc.Result.Quality)).
		Int("suggestions", len(calc.Suggestions)).
		Str("tx_id", rec.ID).
		Msg("slot calculated")
	return out, res, nil
}

// CalculateForm parses raw form values for slot, defaulting anything missing
// or non-numeric, and calculates them.
func (e *Engine) CalculateForm(
	ctx context.Context,
	doc store.Document,
	slot greenit.Slot,
	values map[string]string,
) (store.Document, CalculateResult, error) {
	in, err := greenit.ParseForm(slot, values)
	if err != nil {
		return doc, CalculateResult{}, err
	}
	return e.Calculate(ctx, doc, in)
}

// ResetSlot clears the result held by slot and refreshes the totals.
func (e *Engine) ResetSlot(ctx context.Context, doc store.Document, slot greenit.Slot) (store.Document, error) {
	if _, err := greenit.ParseSlot(string(slot)); err != nil {
		return doc, err
	}
	out := doc.Clone()
	out.GreenIT.Calculations = out.GreenIT.Calculations.Without(slot)
	out.GreenIT.Totals = greenit.ComputeTotals(out.GreenIT.Calculations)
	operationLogger(ctx, "ResetSlot").Debug().Str("slot", string(slot)).Msg("slot cleared")
	return out, nil
}

// ResetGreenIT clears every slot. Settings and the transaction history are kept.
func (e *Engine) ResetGreenIT(ctx context.Context, doc store.Document) store.Document {
	out := doc.Clone()
	out.GreenIT.Calculations = greenit.Calculations{}
	out.GreenIT.Totals = greenit.Totals{}
	operationLogger(ctx, "ResetGreenIT").Debug().Msg("all slots cleared")
	return out
}

// GreenITSettingsUpdate carries the settings to change; nil fields are left alone.
type GreenITSettingsUpdate struct {
	EnergyPrice  *float64
	CarbonFactor *float64
	Currency     *string
}

// UpdateGreenITSettings applies u. Existing slot results keep the settings
// they were computed with until recalculated.
func (e *Engine) UpdateGreenITSettings(
	ctx context.Context,
	doc store.Document,
	u GreenITSettingsUpdate,
) (store.Document, error) {
	out := doc.Clone()
	s := &out.GreenIT.Settings

	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidSetting, name, v)
		}
		return nil
	}
	if u.EnergyPrice != nil {
		if err := check("energy price", *u.EnergyPrice); err != nil {
			return doc, err
		}
		s.EnergyPrice = *u.EnergyPrice
	}
	if u.CarbonFactor != nil {
		if err := check("carbon factor", *u.CarbonFactor); err != nil {
			return doc, err
		}
		s.CarbonFactor = *u.CarbonFactor
	}
	if u.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*u.Currency))
		if c == "" {
			return doc, fmt.Errorf("%w: empty currency", ErrInvalidSetting)
		}
		s.Currency = c
	}

	operationLogger(ctx, "UpdateGreenITSettings").Debug().
		Float64("energy_price", s.EnergyPrice).
		Float64("carbon_factor", s.CarbonFactor).
		Str("currency", s.Currency).
		Msg("green IT settings updated")
	return out, nil
}

// DefaultTransactionLimit is the number of ledger entries a snapshot lists.
const DefaultTransactionLimit = 10

// GreenITSnapshot is the immutable Green IT view handed to presenters.
type GreenITSnapshot struct {
	GeneratedAt      time.Time             `json:"generatedAt"`
	Calculations     greenit.Calculations  `json:"calculations"`
	Totals           greenit.Totals        `json:"totals"`
	SidebarCarbon    string                `json:"sidebarCarbon"`
	Status           []greenit.NodeStatus  `json:"status"`
	Split            greenit.EnergySplit   `json:"split"`
	Settings         greenit.Settings      `json:"settings"`
	Transactions     []greenit.LedgerEntry `json:"transactions"`
	TransactionCount int                   `json:"transactionCount"`
	Practices        []greenit.Practice    `json:"practices"`
}

// GreenITSnapshot derives every Green IT figure from the slot results in doc.
// Transactions are listed newest first.
func (e *Engine) GreenITSnapshot(doc store.Document) GreenITSnapshot {
	calcs := doc.GreenIT.Calculations
	totals := greenit.ComputeTotals(calcs)

	txs := doc.GreenIT.Transactions
	recent := make([]greenit.LedgerEntry, 0, min(len(txs), DefaultTransactionLimit))
	for i := len(txs) - 1; i >= 0 && len(recent) < DefaultTransactionLimit; i-- {
		recent = append(recent, txs[i])
	}

	return GreenITSnapshot{
		GeneratedAt:      e.now(),
		Calculations:     calcs,
		Totals:           totals,
		SidebarCarbon:    greenit.SidebarCarbon(totals.Carbon),
		Status:           greenit.InfrastructureStatus(calcs),
		Split:            greenit.ComputeEnergySplit(calcs),
		Settings:         doc.GreenIT.Settings,
		Transactions:     recent,
		TransactionCount: len(txs),
		Practices:        greenit.Catalogue(),
	}
}
