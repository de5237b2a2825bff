package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

// SubmitResult describes what one activity submission changed.
type SubmitResult struct {
	Activity  tracker.Activity      `json:"activity"`
	Footprint tracker.Footprint     `json:"footprint"`
	Issues    []tracker.Issue       `json:"issues,omitempty"`
	Unlocked  []tracker.Achievement `json:"unlocked,omitempty"`
	Completed []tracker.Challenge   `json:"completed,omitempty"`
	// DroppedSamples counts placeholder activities removed by this submission.
	DroppedSamples int  `json:"droppedSamples,omitempty"`
	Level          int  `json:"level"`
	LevelUp        bool `json:"levelUp,omitempty"`
}

// submission carries one activity through the pipeline.
type submission struct {
	input     tracker.ActivityInput
	now       time.Time
	doc       store.Document
	validated tracker.ValidatedInput
	result    SubmitResult
}

type stage struct {
	name string
	run  func(e *Engine, s *submission) error
}

// pipeline is the fixed order of an activity submission.
//
//nolint:gochecknoglobals // Ordered stage table.
var pipeline = []stage{
	{name: "validate", run: (*Engine).validateStage},
	{name: "compute", run: (*Engine).computeStage},
	{name: "achievements", run: (*Engine).achievementsStage},
	{name: "challenges", run: (*Engine).challengesStage},
	{name: "aggregate", run: (*Engine).aggregateStage},
}

// SubmitActivity validates in, derives its footprint, appends it to the
// ledger, awards achievements, advances challenges and refreshes the monthly
// aggregate. The first real activity drops any sample activities. doc is not
// modified; on error it is returned unchanged.
func (e *Engine) SubmitActivity(
	ctx context.Context,
	doc store.Document,
	in tracker.ActivityInput,
) (store.Document, SubmitResult, error) {
	logger := operationLogger(ctx, "SubmitActivity")

	s := &submission{input: in, now: e.now(), doc: doc.Clone()}
	for _, st := range pipeline {
		if err := st.run(e, s); err != nil {
			logger.Debug().Err(err).Str("stage", st.name).Str("type", in.Type).Msg("activity rejected")
			return doc, SubmitResult{}, fmt.Errorf("%s: %w", st.name, err)
		}
	}

	logger.Debug().
		Str("activity_id", s.result.Activity.ID).
		Str("type", s.result.Activity.Type).
		Float64("carbon", s.result.Activity.CarbonFootprint).
		Int("unlocked", len(s.result.Unlocked)).
		Int("completed", len(s.result.Completed)).
		Msg("activity recorded")
	return s.doc, s.result, nil
}

// QuickAction submits the prefilled activity of a one-click action.
func (e *Engine) QuickAction(
	ctx context.Context,
	doc store.Document,
	category, description string,
) (store.Document, SubmitResult, error) {
	in, ok := tracker.QuickAction(category, description)
	if !ok {
		return doc, SubmitResult{}, fmt.Errorf("%w: %q", ErrUnknownQuickAction, category)
	}
	return e.SubmitActivity(ctx, doc, in)
}

func (e *Engine) validateStage(s *submission) error {
	v, err := tracker.ValidateInput(s.input, e.strict, s.now)
	if err != nil {
		return err
	}
	s.validated = v
	s.result.Issues = append(s.result.Issues, v.Issues...)
	return nil
}

func (e *Engine) computeStage(s *submission) error {
	a, fp := tracker.NewActivity(e.newID(s.now), s.validated, s.now)
	s.result.Activity = a
	s.result.Footprint = fp
	s.result.Issues = append(s.result.Issues, fp.Issues...)

	actual := tracker.RealActivities(s.doc.Tracker.Activities)
	s.result.DroppedSamples = len(s.doc.Tracker.Activities) - len(actual)

	// Newest first.
	s.doc.Tracker.Activities = append([]tracker.Activity{a}, actual...)
	return nil
}

func (e *Engine) achievementsStage(s *submission) error {
	g, unlocked := tracker.CheckAchievements(s.doc.Gamification, s.result.Activity)
	s.doc.Gamification = g
	s.result.Unlocked = unlocked
	return nil
}

func (e *Engine) challengesStage(s *submission) error {
	g, completed := tracker.UpdateChallengeProgress(s.doc.Gamification, s.result.Activity)
	s.doc.Gamification = g
	s.result.Completed = completed
	return nil
}

func (e *Engine) aggregateStage(s *submission) error {
	before := s.doc.Gamification.Level
	refreshTracker(&s.doc, s.now)
	s.result.Level = s.doc.Gamification.Level
	s.result.LevelUp = s.result.Level > before
	return nil
}

// refreshTracker recomputes the derived EcoTracker figures stored in doc from
// its real activities.
func refreshTracker(doc *store.Document, now time.Time) {
	actual := tracker.RealActivities(doc.Tracker.Activities)
	doc.Tracker.Stats = tracker.MonthlyStats(actual, doc.Tracker.User.Settings.MonthlyGoal, now)
	doc.Gamification.Level = tracker.UserLevel(len(actual), doc.Tracker.Stats.EcoScore)
	doc.Gamification.Streak = tracker.Streak(actual, now)
}
