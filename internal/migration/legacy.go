package migration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/ecotrack/internal/factors"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

// Browser storage keys of the legacy application.
const (
	KeyTracker      = "ecoTrackerData"
	KeyGamification = "ecoTrackerGamification"
	KeyGreenIT      = "greenITData"
)

// footprintTolerance is the largest stored/derived difference treated as equal.
const footprintTolerance = 0.005

// ImportReport summarizes a legacy import.
type ImportReport struct {
	Activities   int      `json:"activities"`
	Placeholders int      `json:"placeholders"`
	Recomputed   int      `json:"recomputed"`
	Skipped      []string `json:"skipped,omitempty"`
	Calculations int      `json:"calculations"`
	Transactions int      `json:"transactions"`
	Sections     []string `json:"sections"`
}

type legacyActivity struct {
	ID              json.RawMessage `json:"id"`
	Type            string          `json:"type"`
	Mode            string          `json:"mode"`
	Description     string          `json:"description"`
	Value           json.RawMessage `json:"value"`
	Unit            string          `json:"unit"`
	Date            string          `json:"date"`
	CarbonFootprint float64         `json:"carbonFootprint"`
	Timestamp       string          `json:"timestamp"`
}

type legacySettings struct {
	Notifications  *bool           `json:"notifications"`
	DailyReminders *bool           `json:"dailyReminders"`
	MonthlyGoal    json.RawMessage `json:"monthlyGoal"`
}

type legacyTracker struct {
	Activities []legacyActivity `json:"activities"`
	User       *struct {
		Name     string          `json:"name"`
		JoinDate string          `json:"joinDate"`
		Settings *legacySettings `json:"settings"`
	} `json:"user"`
}

// sampleSignature identifies the demo activities the browser app seeded.
type sampleSignature struct {
	id    string
	typ   string
	value float64
	date  string
}

//nolint:gochecknoglobals // Fixed demo data signatures.
var legacySamples = []sampleSignature{
	{"1", "transport", 25, "2024-01-20"},
	{"2", "electricity", 120, "2024-01-19"},
	{"3", "heating", 80, "2024-01-18"},
}

// ImportLegacy converts a dump of the browser application's storage into a
// current document. data is a JSON object keyed by storage key; each value is
// either the stored JSON string or the decoded object. Missing sections keep
// their defaults. Footprints, stats and totals are re-derived, never trusted.
func ImportLegacy(data []byte, now time.Time) (store.Document, ImportReport, error) {
	var dump map[string]json.RawMessage
	if err := json.Unmarshal(data, &dump); err != nil {
		return store.Document{}, ImportReport{}, fmt.Errorf("%w: %w", ErrInvalidLegacyExport, err)
	}

	doc := store.DefaultDocument()
	var report ImportReport

	if raw, ok := dump[KeyTracker]; ok {
		section, err := unwrapSection(raw)
		if err != nil {
			return store.Document{}, report, fmt.Errorf("%w: %s: %w", ErrInvalidLegacyExport, KeyTracker, err)
		}
		if err = importTracker(section, &doc, &report, now); err != nil {
			return store.Document{}, report, err
		}
		report.Sections = append(report.Sections, KeyTracker)
	}

	if raw, ok := dump[KeyGamification]; ok {
		section, err := unwrapSection(raw)
		if err != nil {
			return store.Document{}, report, fmt.Errorf("%w: %s: %w", ErrInvalidLegacyExport, KeyGamification, err)
		}
		if err = json.Unmarshal(section, &doc.Gamification); err != nil {
			return store.Document{}, report, fmt.Errorf("%w: %s: %w", ErrInvalidLegacyExport, KeyGamification, err)
		}
		if doc.Gamification.Achievements == nil {
			doc.Gamification.Achievements = []string{}
		}
		report.Sections = append(report.Sections, KeyGamification)
	}

	if raw, ok := dump[KeyGreenIT]; ok {
		section, err := unwrapSection(raw)
		if err != nil {
			return store.Document{}, report, fmt.Errorf("%w: %s: %w", ErrInvalidLegacyExport, KeyGreenIT, err)
		}
		// Field names are unchanged, so the section decodes directly.
		if err = json.Unmarshal(section, &doc.GreenIT); err != nil {
			return store.Document{}, report, fmt.Errorf("%w: %s: %w", ErrInvalidLegacyExport, KeyGreenIT, err)
		}
		deriveGreenITTotals(&doc, now)
		report.Calculations = doc.GreenIT.Totals.Slots
		report.Transactions = len(doc.GreenIT.Transactions)
		report.Sections = append(report.Sections, KeyGreenIT)
	}

	if len(report.Sections) == 0 {
		return store.Document{}, report, fmt.Errorf("%w: none of %s, %s, %s present",
			ErrInvalidLegacyExport, KeyTracker, KeyGamification, KeyGreenIT)
	}

	actual := tracker.RealActivities(doc.Tracker.Activities)
	doc.Tracker.Stats = tracker.MonthlyStats(actual, doc.Tracker.User.Settings.MonthlyGoal, now)
	doc.Gamification.Level = tracker.UserLevel(len(actual), doc.Tracker.Stats.EcoScore)
	doc.SchemaVersion = store.SchemaVersion
	return doc, report, nil
}

// unwrapSection accepts either a JSON object or a JSON string holding one.
func unwrapSection(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		trimmed = []byte(s)
	}
	if !json.Valid(trimmed) {
		return nil, errors.New("section is not JSON")
	}
	return trimmed, nil
}

func importTracker(section json.RawMessage, doc *store.Document, report *ImportReport, now time.Time) error {
	var lt legacyTracker
	if err := json.Unmarshal(section, &lt); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidLegacyExport, KeyTracker, err)
	}

	if lt.User != nil {
		if lt.User.Name != "" {
			doc.Tracker.User.Name = lt.User.Name
		}
		if lt.User.JoinDate != "" {
			doc.Tracker.User.JoinDate = lt.User.JoinDate
		}
		if s := lt.User.Settings; s != nil {
			if s.Notifications != nil {
				doc.Tracker.User.Settings.Notifications = *s.Notifications
			}
			if s.DailyReminders != nil {
				doc.Tracker.User.Settings.DailyReminders = *s.DailyReminders
			}
			if goal, ok := looseNumber(s.MonthlyGoal); ok {
				doc.Tracker.User.Settings.MonthlyGoal = goal
			}
		}
	}

	activities := make([]tracker.Activity, 0, len(lt.Activities))
	for i, la := range lt.Activities {
		a, reason := convertActivity(la, now)
		if reason != "" {
			report.Skipped = append(report.Skipped, fmt.Sprintf("activity %d: %s", i, reason))
			continue
		}
		if math.Abs(a.CarbonFootprint-la.CarbonFootprint) > footprintTolerance {
			report.Recomputed++
		}
		if a.IsPlaceholder {
			report.Placeholders++
		}
		activities = append(activities, a)
	}
	doc.Tracker.Activities = activities
	report.Activities = len(activities)
	return nil
}

func convertActivity(la legacyActivity, now time.Time) (tracker.Activity, string) {
	typ := strings.ToLower(strings.TrimSpace(la.Type))
	if typ == "" {
		return tracker.Activity{}, "missing type"
	}
	value, ok := looseNumber(la.Value)
	if !ok {
		return tracker.Activity{}, "value is not a number"
	}
	if value < 0 {
		return tracker.Activity{}, "negative value"
	}
	if _, err := tracker.ParseDate(la.Date, now.Location()); err != nil {
		return tracker.Activity{}, "invalid date " + strconv.Quote(la.Date)
	}

	id := looseID(la.ID)
	if id == "" {
		id = ulid.Make().String()
	}
	ts, err := time.Parse(time.RFC3339, la.Timestamp)
	if err != nil {
		ts = now.UTC()
	}
	unit := la.Unit
	if unit == "" {
		unit = factors.DefaultUnit(typ)
	}

	a := tracker.Recompute(tracker.Activity{
		ID:          id,
		Type:        typ,
		Mode:        strings.ToLower(strings.TrimSpace(la.Mode)),
		Description: la.Description,
		Value:       value,
		Unit:        unit,
		Date:        la.Date,
		Timestamp:   ts.UTC(),
	})
	for _, s := range legacySamples {
		if s.id == id && s.typ == typ && s.value == value && s.date == la.Date {
			a.IsPlaceholder = true
		}
	}
	return a, ""
}

// looseNumber decodes a JSON number or numeric string. null and garbage are rejected.
func looseNumber(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err == nil {
		return f, !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return 0, false
	}
	v, issue := tracker.ParseValue("value", s)
	return v, issue == nil
}

// looseID decodes a JSON number or string id.
func looseID(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n.String()
	}
	return ""
}
