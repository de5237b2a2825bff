package migration

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

// compatibleSchemas are the document versions this build can read, after upgrade.
const compatibleSchemas = "< 2.0.0"

// unversioned is assumed for documents written before the schema was stamped.
const unversioned = "0.0.0"

// step upgrades a document to version To.
type step struct {
	To    string
	Name  string
	apply func(doc *store.Document, now time.Time)
}

//nolint:gochecknoglobals // Ordered upgrade table.
var steps = []step{
	{To: "1.0.0", Name: "recompute activity footprints", apply: recomputeFootprints},
	{To: "1.1.0", Name: "derive green IT totals", apply: deriveGreenITTotals},
}

// UpgradeResult describes what Upgrade did.
type UpgradeResult struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Applied []string `json:"applied,omitempty"`
}

// Upgraded reports whether any step ran.
func (r UpgradeResult) Upgraded() bool {
	return len(r.Applied) > 0
}

// Check parses the document version and verifies this build can read it.
func Check(version string) (*semver.Version, error) {
	if version == "" {
		version = unversioned
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrIncompatibleSchema, version, err)
	}
	c, err := semver.NewConstraint(compatibleSchemas)
	if err != nil {
		return nil, fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return nil, fmt.Errorf("%w: %s (this build reads %s)", ErrIncompatibleSchema, v, compatibleSchemas)
	}
	return v, nil
}

// Upgrade applies every step newer than the document's version and stamps
// the current schema. Documents already at or past the current version are
// returned unchanged.
func Upgrade(doc store.Document, now time.Time) (store.Document, UpgradeResult, error) {
	v, err := Check(doc.SchemaVersion)
	if err != nil {
		return doc, UpgradeResult{}, err
	}

	res := UpgradeResult{From: v.String(), To: v.String()}
	out := doc.Clone()
	for _, s := range steps {
		target := semver.MustParse(s.To)
		if !v.LessThan(target) {
			continue
		}
		s.apply(&out, now)
		res.Applied = append(res.Applied, s.Name)
		res.To = target.String()
	}
	if res.Upgraded() {
		out.SchemaVersion = store.SchemaVersion
	}
	return out, res, nil
}

func recomputeFootprints(doc *store.Document, _ time.Time) {
	for i, a := range doc.Tracker.Activities {
		doc.Tracker.Activities[i] = tracker.Recompute(a)
	}
}

func deriveGreenITTotals(doc *store.Document, _ time.Time) {
	def := greenit.DefaultSettings()
	if doc.GreenIT.Settings.EnergyPrice <= 0 {
		doc.GreenIT.Settings.EnergyPrice = def.EnergyPrice
	}
	if doc.GreenIT.Settings.CarbonFactor <= 0 {
		doc.GreenIT.Settings.CarbonFactor = def.CarbonFactor
	}
	if doc.GreenIT.Settings.Currency == "" {
		doc.GreenIT.Settings.Currency = def.Currency
	}
	doc.GreenIT.Totals = greenit.ComputeTotals(doc.GreenIT.Calculations)
}
