package tracker

import (
	"math"
	"time"

	"github.com/rshade/ecotrack/internal/factors"
)

// Level bounds.
const (
	MaxLevel       = 5
	pointsPerLevel = 20
)

// Challenge identifiers.
const (
	ChallengeBikeWeek   = "bike_week"
	ChallengeEnergySave = "energy_save"
)

// Achievement identifiers.
const (
	AchievementCyclist     = "cyclist"
	AchievementEnergySaver = "energy_saver"
)

// Thresholds for the achievement and challenge rules.
const (
	cyclistMinDistance    = 10.0
	energySaverMaxCarbon  = 5.0
	energyBaselineKWh     = 100.0
	energyReductionFactor = 5.0
)

//nolint:gochecknoglobals // Read-only lookup table.
var levelNames = [MaxLevel]string{"Graine", "Jeune Pousse", "Arbuste", "Jeune Arbre", "Arbre Mature"}

// Challenge is a goal with a numeric target and a point reward.
type Challenge struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Target      float64 `json:"target"`
	Current     float64 `json:"current"`
	Reward      int     `json:"reward"`
	Icon        string  `json:"icon"`
	Active      bool    `json:"active"`
	Unit        string  `json:"unit"`
	Completed   bool    `json:"completed,omitempty"`
}

// Progress returns completion as a percentage in [0, 100].
func (c Challenge) Progress() float64 {
	if c.Target <= 0 {
		return 0
	}
	return math.Min(100, c.Current/c.Target*100)
}

// Achievement is a one-time badge.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Gamification is the persisted progress tree.
type Gamification struct {
	Level        int         `json:"level"`
	XP           int         `json:"xp"`
	Achievements []string    `json:"achievements"`
	Streak       int         `json:"streak"`
	Challenges   []Challenge `json:"challenges"`
}

// DefaultChallenges returns the starting challenge set.
func DefaultChallenges() []Challenge {
	return []Challenge{
		{
			ID:          ChallengeBikeWeek,
			Title:       "Semaine du Vélo",
			Description: "Parcourez 50km à vélo cette semaine",
			Target:      50,
			Reward:      500,
			Icon:        "🚴",
			Active:      true,
			Unit:        "km",
		},
		{
			ID:          ChallengeEnergySave,
			Title:       "Économie d'Énergie",
			Description: "Réduisez votre consommation de 20%",
			Target:      20,
			Reward:      300,
			Icon:        "💡",
			Active:      false,
			Unit:        "%",
		},
	}
}

// DefaultGamification returns level 1 with the default challenges.
func DefaultGamification() Gamification {
	return Gamification{
		Level:        1,
		Achievements: []string{},
		Challenges:   DefaultChallenges(),
	}
}

// Clone returns a deep copy of g.
func (g Gamification) Clone() Gamification {
	out := g
	out.Achievements = append([]string{}, g.Achievements...)
	out.Challenges = append([]Challenge{}, g.Challenges...)
	return out
}

// HasAchievement reports whether id was already awarded.
func (g Gamification) HasAchievement(id string) bool {
	for _, a := range g.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// UserLevel derives the level from the activity count and eco score.
func UserLevel(activityCount, ecoScore int) int {
	level := (activityCount+ecoScore)/pointsPerLevel + 1
	return max(1, min(level, MaxLevel))
}

// LevelName returns the display name of level.
func LevelName(level int) string {
	return levelNames[max(1, min(level, MaxLevel))-1]
}

// CheckAchievements awards the badges activity unlocks. Each badge is awarded once.
func CheckAchievements(g Gamification, a Activity) (Gamification, []Achievement) {
	out := g.Clone()
	var unlocked []Achievement

	if a.Type == factors.CategoryTransport && a.Value > cyclistMinDistance && !out.HasAchievement(AchievementCyclist) {
		unlocked = append(unlocked, Achievement{
			ID:          AchievementCyclist,
			Title:       "Cycliste Urbain",
			Icon:        "bicycle",
			Description: "Premier trajet écologique enregistré",
		})
	}
	if a.Type == factors.CategoryElectricity && a.CarbonFootprint < energySaverMaxCarbon &&
		!out.HasAchievement(AchievementEnergySaver) {
		unlocked = append(unlocked, Achievement{
			ID:          AchievementEnergySaver,
			Title:       "Économe d'Énergie",
			Icon:        "lightbulb",
			Description: "Consommation électrique optimisée",
		})
	}

	for _, u := range unlocked {
		out.Achievements = append(out.Achievements, u.ID)
	}
	return out, unlocked
}

// UpdateChallengeProgress advances the challenges a matches, capped at their
// target. A challenge reaching its target for the first time pays its reward
// into XP and is returned.
func UpdateChallengeProgress(g Gamification, a Activity) (Gamification, []Challenge) {
	out := g.Clone()
	var completed []Challenge

	for i := range out.Challenges {
		c := &out.Challenges[i]
		var delta float64
		switch {
		case c.ID == ChallengeBikeWeek && a.Type == factors.CategoryTransport:
			delta = a.Value
		case c.ID == ChallengeEnergySave && a.Type == factors.CategoryElectricity:
			delta = math.Max(0, energyBaselineKWh-a.Value) / energyReductionFactor
		default:
			continue
		}
		c.Current = math.Min(c.Current+delta, c.Target)
		if !c.Completed && c.Target > 0 && c.Current >= c.Target {
			c.Completed = true
			out.XP += c.Reward
			completed = append(completed, *c)
		}
	}
	return out, completed
}

// Streak counts consecutive days, ending today or yesterday, with at least one activity.
func Streak(activities []Activity, now time.Time) int {
	days := make(map[string]bool, len(activities))
	for _, a := range activities {
		d, err := ParseDate(a.Date, now.Location())
		if err != nil {
			continue
		}
		days[d.Format(DateLayout)] = true
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !days[day.Format(DateLayout)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day.Format(DateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
