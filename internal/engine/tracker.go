package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

// SnapshotOptions tune what a snapshot aggregates.
type SnapshotOptions struct {
	// IncludePlaceholders folds sample activities into the aggregates.
	IncludePlaceholders bool
}

// ChallengeView is a challenge with its completion percentage.
type ChallengeView struct {
	tracker.Challenge
	Progress float64 `json:"progress"`
}

// TrackerSnapshot is the immutable EcoTracker view handed to presenters.
type TrackerSnapshot struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	User        tracker.User `json:"user"`

	// Recent lists the newest activities, samples included and flagged.
	Recent        []tracker.Activity `json:"recent"`
	ActivityCount int                `json:"activityCount"`
	SampleCount   int                `json:"sampleCount"`

	Stats           tracker.Stats            `json:"stats"`
	Goal            GoalUsage                `json:"goal"`
	Breakdown       tracker.Breakdown        `json:"breakdown"`
	Trend           tracker.Trend            `json:"trend"`
	Recommendations []tracker.Recommendation `json:"recommendations"`

	Level        int             `json:"level"`
	LevelName    string          `json:"levelName"`
	XP           int             `json:"xp"`
	Streak       int             `json:"streak"`
	Achievements []string        `json:"achievements"`
	Challenges   []ChallengeView `json:"challenges"`
}

// TrackerSnapshot derives every EcoTracker figure from doc. Nothing stored in
// doc.Tracker.Stats is trusted; the snapshot is recomputed from the ledger.
func (e *Engine) TrackerSnapshot(doc store.Document, opts SnapshotOptions) TrackerSnapshot {
	now := e.now()
	all := doc.Tracker.Activities
	acts := all
	if !opts.IncludePlaceholders {
		acts = tracker.RealActivities(all)
	}

	stats := tracker.MonthlyStats(acts, doc.Tracker.User.Settings.MonthlyGoal, now)
	level := tracker.UserLevel(len(acts), stats.EcoScore)

	challenges := make([]ChallengeView, 0, len(doc.Gamification.Challenges))
	for _, c := range doc.Gamification.Challenges {
		challenges = append(challenges, ChallengeView{Challenge: c, Progress: c.Progress()})
	}

	return TrackerSnapshot{
		GeneratedAt:     now,
		User:            doc.Tracker.User,
		Recent:          tracker.Recent(all),
		ActivityCount:   len(acts),
		SampleCount:     len(all) - len(tracker.RealActivities(all)),
		Stats:           stats,
		Goal:            CalculateGoalUsage(stats.TotalCarbon, doc.Tracker.User.Settings.MonthlyGoal),
		Breakdown:       tracker.CategoryBreakdown(acts),
		Trend:           tracker.MonthlyTrend(acts, now),
		Recommendations: tracker.GenerateRecommendations(acts),
		Level:           level,
		LevelName:       tracker.LevelName(level),
		XP:              doc.Gamification.XP,
		Streak:          tracker.Streak(acts, now),
		Achievements:    append([]string{}, doc.Gamification.Achievements...),
		Challenges:      challenges,
	}
}

// Activities returns up to limit activities, newest first. limit <= 0 returns all.
func (e *Engine) Activities(doc store.Document, limit int, includePlaceholders bool) []tracker.Activity {
	acts := doc.Tracker.Activities
	if !includePlaceholders {
		acts = tracker.RealActivities(acts)
	}
	if limit > 0 && limit < len(acts) {
		acts = acts[:limit]
	}
	return append([]tracker.Activity{}, acts...)
}

// LoadSamples seeds an empty ledger with the flagged sample activities.
func (e *Engine) LoadSamples(ctx context.Context, doc store.Document) (store.Document, int) {
	out := doc.Clone()
	out.Tracker = tracker.WithSamples(out.Tracker, e.now())
	added := len(out.Tracker.Activities) - len(doc.Tracker.Activities)
	operationLogger(ctx, "LoadSamples").Debug().Int("added", added).Msg("samples loaded")
	return out, added
}

// ResetTracker clears the activity ledger and gamification progress. The user
// profile and settings are kept.
func (e *Engine) ResetTracker(ctx context.Context, doc store.Document) store.Document {
	out := doc.Clone()
	out.Tracker.Activities = []tracker.Activity{}
	out.Gamification = tracker.DefaultGamification()
	refreshTracker(&out, e.now())
	operationLogger(ctx, "ResetTracker").Debug().Msg("tracker state reset")
	return out
}

// SettingsUpdate carries the settings to change; nil fields are left alone.
type SettingsUpdate struct {
	Name           *string
	Notifications  *bool
	DailyReminders *bool
	MonthlyGoal    *float64
}

// UpdateSettings applies u and refreshes the aggregates that depend on the
// goal. A goal of zero or less is accepted and scores 0.
func (e *Engine) UpdateSettings(ctx context.Context, doc store.Document, u SettingsUpdate) (store.Document, error) {
	out := doc.Clone()
	s := &out.Tracker.User.Settings

	if u.MonthlyGoal != nil {
		if math.IsNaN(*u.MonthlyGoal) || math.IsInf(*u.MonthlyGoal, 0) {
			return doc, fmt.Errorf("%w: monthly goal %v", ErrInvalidSetting, *u.MonthlyGoal)
		}
		s.MonthlyGoal = *u.MonthlyGoal
	}
	if u.Notifications != nil {
		s.Notifications = *u.Notifications
	}
	if u.DailyReminders != nil {
		s.DailyReminders = *u.DailyReminders
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		out.Tracker.User.Name = strings.TrimSpace(*u.Name)
	}

	refreshTracker(&out, e.now())
	operationLogger(ctx, "UpdateSettings").Debug().
		Float64("monthly_goal", s.MonthlyGoal).
		Bool("notifications", s.Notifications).
		Msg("settings updated")
	return out, nil
}
