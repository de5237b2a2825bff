package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/store"
)

// statsView is the JSON shape of "ecotrack stats".
type statsView struct {
	engine.TrackerSnapshot
	Equivalency string `json:"equivalency,omitempty"`
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var (
		includeSamples bool
		exitCode       bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show this month's footprint, goal usage and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				nf := formatter(flags)
				snap := a.engine.TrackerSnapshot(doc, engine.SnapshotOptions{IncludePlaceholders: includeSamples})
				view := statsView{
					TrackerSnapshot: snap,
					Equivalency:     greenops.Describe(ctx, snap.Stats.TotalCarbon, nf),
				}
				err = render(cmd.OutOrStdout(), flags, view, func(w io.Writer, styled bool) error {
					return renderStats(w, view, nf, styled)
				})
				if err != nil {
					return err
				}
				if exitCode && snap.Goal.Health == engine.HealthExceeded {
					return &GoalExitError{
						ExitCode: GoalExitCode,
						Reason:   fmt.Sprintf("monthly goal exceeded: %.2f of %.2f kg CO2", snap.Goal.Used, snap.Goal.Goal),
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&includeSamples, "include-samples", false, "fold sample activities into the figures")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit with status 2 when the monthly goal is exceeded")
	return cmd
}

func renderStats(w io.Writer, v statsView, nf *greenops.Formatter, styled bool) error {
	s := v.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "Carbon this month:  %s kg CO2\n", nf.Float(s.TotalCarbon, 2))
	fmt.Fprintf(&b, "Energy this month:  %s kWh\n", nf.Float(s.TotalEnergy, 2))
	fmt.Fprintf(&b, "Savings vs goal:    %s kg CO2\n", nf.Float(s.TotalSavings, 2))
	fmt.Fprintf(&b, "Eco score:          %d/100\n", s.EcoScore)
	if v.Goal.Goal > 0 {
		bar := renderProgressBar(v.Goal.Percentage, progressBarWidth, healthColor(v.Goal.Health), styled)
		fmt.Fprintf(&b, "Goal:               %s kg CO2 %s %s%% %s\n",
			nf.Float(v.Goal.Goal, 0), bar, nf.Float(v.Goal.Percentage, 1), healthLabel(v.Goal.Health))
	} else {
		b.WriteString("Goal:               not set\n")
	}
	fmt.Fprintf(&b, "Level:              %d (%s), %d XP\n", v.Level, v.LevelName, v.XP)
	fmt.Fprintf(&b, "Streak:             %d days\n", v.Streak)
	fmt.Fprintf(&b, "Activities:         %d", v.ActivityCount)
	if v.SampleCount > 0 {
		fmt.Fprintf(&b, " (+%d samples)", v.SampleCount)
	}
	b.WriteString("\n")
	if v.Equivalency != "" {
		b.WriteString(v.Equivalency)
		b.WriteString("\n")
	}

	b.WriteString("\nBy category")
	if v.Breakdown.IsPlaceholder {
		b.WriteString(" (sample values)")
	}
	b.WriteString(":\n")
	for _, bk := range v.Breakdown.Buckets {
		fmt.Fprintf(&b, "  %-14s %s\n", bk.Label, nf.Float(bk.Carbon, 2))
	}

	b.WriteString("\nLast six months")
	if v.Trend.IsPlaceholder {
		b.WriteString(" (sample values)")
	}
	b.WriteString(":\n")
	for _, p := range v.Trend.Points {
		fmt.Fprintf(&b, "  %-6s %4d  %s kg  %s kWh\n", p.Label, p.Year, nf.Float(p.Carbon, 2), nf.Float(p.Energy, 0))
	}

	content := strings.TrimRight(b.String(), "\n")
	if styled {
		return box(w, "ECOTRACKER · "+strings.ToUpper(v.User.Name), content)
	}
	_, err := fmt.Fprintln(w, content)
	return err
}

func newRecommendCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Show personalized recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				recs := a.engine.TrackerSnapshot(doc, engine.SnapshotOptions{}).Recommendations
				return render(cmd.OutOrStdout(), flags, recs, func(w io.Writer, styled bool) error {
					title := lipgloss.NewStyle().Bold(true)
					muted := lipgloss.NewStyle().Foreground(colorMuted())
					for _, r := range recs {
						name := r.Title
						impact := "Impact: " + r.Impact
						if styled {
							name = title.Render(name)
							impact = muted.Render(impact)
						}
						if _, err := fmt.Fprintf(w, "%s\n  %s\n  %s\n", name, r.Description, impact); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
}

func newChallengesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "challenges",
		Short: "Show challenges and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				snap := a.engine.TrackerSnapshot(doc, engine.SnapshotOptions{})
				view := struct {
					Challenges   []engine.ChallengeView `json:"challenges"`
					Achievements []string               `json:"achievements"`
					XP           int                    `json:"xp"`
				}{snap.Challenges, snap.Achievements, snap.XP}

				return render(cmd.OutOrStdout(), flags, view, func(w io.Writer, styled bool) error {
					nf := formatter(flags)
					tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
					fmt.Fprintln(tw, "CHALLENGE\tPROGRESS\t\tREWARD\tSTATUS\t")
					for _, c := range view.Challenges {
						status := "inactive"
						switch {
						case c.Completed:
							status = "completed"
						case c.Active:
							status = "active"
						}
						fmt.Fprintf(tw, "%s\t%s/%s %s\t%s\t%d XP\t%s\t\n",
							c.Title, nf.Float(c.Current, 0), nf.Float(c.Target, 0), c.Unit,
							renderProgressBar(c.Progress, 10, colorOK(), styled), c.Reward, status)
					}
					if err := tw.Flush(); err != nil {
						return err
					}
					achievements := "none yet"
					if len(view.Achievements) > 0 {
						achievements = strings.Join(view.Achievements, ", ")
					}
					_, err := fmt.Fprintf(w, "\nAchievements: %s\nXP: %d\n", achievements, view.XP)
					return err
				})
			})
		},
	}
}

func newSettingsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage user and Green IT settings stored with the state",
	}
	cmd.AddCommand(newSettingsSetCmd(flags), newSettingsShowCmd(flags))
	return cmd
}

func newSettingsShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				view := struct {
					Name    string `json:"name"`
					User    any    `json:"user"`
					GreenIT any    `json:"greenit"`
				}{doc.Tracker.User.Name, doc.Tracker.User.Settings, doc.GreenIT.Settings}
				return render(cmd.OutOrStdout(), flags, view, func(w io.Writer, _ bool) error {
					u, g := doc.Tracker.User.Settings, doc.GreenIT.Settings
					_, err := fmt.Fprintf(w,
						"Name: %s\nMonthly goal: %v kg CO2\nNotifications: %t\nDaily reminders: %t\nEnergy price: %v %s/kWh\nCarbon factor: %v kg CO2/kWh\n",
						doc.Tracker.User.Name, u.MonthlyGoal, u.Notifications, u.DailyReminders,
						g.EnergyPrice, g.Currency, g.CarbonFactor)
					return err
				})
			})
		},
	}
}

func newSettingsSetCmd(flags *globalFlags) *cobra.Command {
	var (
		name           string
		goal           float64
		notifications  bool
		dailyReminders bool
		energyPrice    float64
		carbonFactor   float64
		currency       string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Example: `  ecotrack settings set --goal 350
  ecotrack settings set --energy-price 0.21 --currency usd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			var u engine.SettingsUpdate
			if f.Changed("name") {
				u.Name = &name
			}
			if f.Changed("goal") {
				u.MonthlyGoal = &goal
			}
			if f.Changed("notifications") {
				u.Notifications = &notifications
			}
			if f.Changed("daily-reminders") {
				u.DailyReminders = &dailyReminders
			}
			var g engine.GreenITSettingsUpdate
			if f.Changed("energy-price") {
				g.EnergyPrice = &energyPrice
			}
			if f.Changed("carbon-factor") {
				g.CarbonFactor = &carbonFactor
			}
			if f.Changed("currency") {
				g.Currency = &currency
			}

			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					out, err := a.engine.UpdateSettings(ctx, doc, u)
					if err != nil {
						return doc, err
					}
					return a.engine.UpdateGreenITSettings(ctx, out, g)
				})
				if err != nil {
					return err
				}
				cmd.Println("Settings updated")
				return nil
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&name, "name", "", "display name")
	fl.Float64Var(&goal, "goal", 0, "monthly carbon goal in kg CO2 (0 disables the eco score)")
	fl.BoolVar(&notifications, "notifications", true, "enable notifications")
	fl.BoolVar(&dailyReminders, "daily-reminders", false, "enable daily reminders")
	fl.Float64Var(&energyPrice, "energy-price", 0, "Green IT energy price per kWh")
	fl.Float64Var(&carbonFactor, "carbon-factor", 0, "Reference grid factor in kg CO2/kWh (stored, not used by calculators)")
	fl.StringVar(&currency, "currency", "", "Green IT currency code")
	return cmd
}
