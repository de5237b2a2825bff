package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/engine/batch"
	"github.com/rshade/ecotrack/internal/factors"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/store"
	"github.com/rshade/ecotrack/internal/tracker"
)

func newActivityCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log and list activities",
	}
	cmd.AddCommand(
		newActivityAddCmd(flags),
		newActivityQuickCmd(flags),
		newActivityListCmd(flags),
		newActivityImportCmd(flags),
	)
	return cmd
}

func newActivityAddCmd(flags *globalFlags) *cobra.Command {
	var in tracker.ActivityInput

	cmd := &cobra.Command{
		Use:   "add <category> <value>",
		Short: "Log an activity",
		Long: `Logs one activity. Categories: transport (km), electricity (kwh),
heating (kwh), water (liters), waste (kg). The footprint is always derived
from the category, mode and value.`,
		Example: `  ecotrack activity add transport 25 --mode train --description "Paris-Lyon"
  ecotrack activity add electricity 120 --date 2025-03-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, issue := tracker.ParseValue("value", args[1])
			if issue != nil {
				return fmt.Errorf("%s: %s", issue.Field, issue.Reason)
			}
			in.Type = args[0]
			in.Value = value

			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				var res engine.SubmitResult
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					out, r, submitErr := a.engine.SubmitActivity(ctx, doc, in)
					res = r
					return out, submitErr
				})
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, res, func(w io.Writer, styled bool) error {
					return renderSubmitResult(w, res, formatter(flags), styled)
				})
			})
		},
	}

	cmd.Flags().StringVar(&in.Mode, "mode", "", "transport mode (car, bus, train, plane) or heating source (gas, oil, electric)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "free-text description")
	cmd.Flags().StringVar(&in.Unit, "unit", "", "unit label (default per category)")
	cmd.Flags().StringVar(&in.Date, "date", "", "activity date YYYY-MM-DD (default today)")
	return cmd
}

func newActivityQuickCmd(flags *globalFlags) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:       "quick <transport|electricity|heating>",
		Short:     "Log a preset activity",
		Long:      "Logs a preset activity: transport 10 km, electricity 50 kwh or heating 30 kwh, dated today.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"transport", "electricity", "heating"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				var res engine.SubmitResult
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					out, r, qErr := a.engine.QuickAction(ctx, doc, args[0], description)
					res = r
					return out, qErr
				})
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, res, func(w io.Writer, styled bool) error {
					return renderSubmitResult(w, res, formatter(flags), styled)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "description (default per preset)")
	return cmd
}

func newActivityListCmd(flags *globalFlags) *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				acts := a.engine.Activities(doc, limit, all)
				return render(cmd.OutOrStdout(), flags, acts, func(w io.Writer, _ bool) error {
					return renderActivities(w, acts, formatter(flags))
				})
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", tracker.RecentLimit, "maximum number of activities (0 = all)")
	cmd.Flags().BoolVar(&all, "all", false, "include sample activities")
	return cmd
}

func newActivityImportCmd(flags *globalFlags) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Log many activities from a JSON array",
		Long: `Reads a JSON array of activities ({"type","mode","description","value","unit","date"})
and runs each through the same pipeline as "activity add". Invalid entries are
reported and skipped; the valid ones are saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			var inputs []tracker.ActivityInput
			if err = json.Unmarshal(data, &inputs); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				var res engine.BulkResult
				progress := func(s batch.Snapshot) {
					if isWriterTerminal(cmd.ErrOrStderr()) {
						fmt.Fprintf(cmd.ErrOrStderr(), "\rImporting: %d/%d (%.0f%%)", s.ProcessedItems, s.TotalItems, s.PercentComplete())
					}
				}
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					out, r, bErr := a.engine.SubmitBatch(ctx, doc, inputs, batchSize, progress)
					res = r
					return out, bErr
				})
				if isWriterTerminal(cmd.ErrOrStderr()) {
					fmt.Fprintln(cmd.ErrOrStderr())
				}
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, res, func(w io.Writer, _ bool) error {
					return renderBulkResult(w, res)
				})
			})
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", batch.DefaultBatchSize, "activities per batch")
	return cmd
}

func renderSubmitResult(w io.Writer, res engine.SubmitResult, nf *greenops.Formatter, styled bool) error {
	a := res.Activity
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s (%s)\n", factors.CategoryLabel(a.Type), nf.Float(a.Value, 2), a.Unit, a.Date)
	fmt.Fprintf(&b, "Footprint: %s kg CO2", nf.Float(a.CarbonFootprint, 2))
	if res.Footprint.Quality == tracker.QualityDefaulted {
		b.WriteString(" (default factor)")
	}
	b.WriteString("\n")
	for _, issue := range res.Issues {
		fmt.Fprintf(&b, "Note: %s: %s\n", issue.Field, issue.Reason)
	}
	if res.DroppedSamples > 0 {
		fmt.Fprintf(&b, "Sample activities removed: %d\n", res.DroppedSamples)
	}
	for _, ach := range res.Unlocked {
		fmt.Fprintf(&b, "Achievement unlocked: %s\n", ach.Title)
	}
	for _, c := range res.Completed {
		fmt.Fprintf(&b, "Challenge completed: %s (+%d XP)\n", c.Title, c.Reward)
	}
	if res.LevelUp {
		fmt.Fprintf(&b, "Level up: %d (%s)\n", res.Level, tracker.LevelName(res.Level))
	}

	content := strings.TrimRight(b.String(), "\n")
	if styled {
		return box(w, "ACTIVITY LOGGED", content)
	}
	_, err := fmt.Fprintln(w, content)
	return err
}

func renderActivities(w io.Writer, acts []tracker.Activity, nf *greenops.Formatter) error {
	if len(acts) == 0 {
		_, err := fmt.Fprintln(w, "No activities logged.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCATEGORY\tDESCRIPTION\tVALUE\tCO2 (KG)\t")
	for _, a := range acts {
		desc := a.Description
		if a.IsPlaceholder {
			desc += " [sample]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\t\n",
			a.Date, factors.CategoryLabel(a.Type), desc, nf.Float(a.Value, 2), a.Unit, nf.Float(a.CarbonFootprint, 2))
	}
	return tw.Flush()
}

func renderBulkResult(w io.Writer, res engine.BulkResult) error {
	p := res.Progress
	if _, err := fmt.Fprintf(w, "Imported %d of %d activities in %d batches.\n",
		p.Succeeded(), p.TotalItems, p.ProcessedBatches); err != nil {
		return err
	}
	warn := lipgloss.NewStyle().Foreground(colorWarning())
	for _, f := range res.Failures {
		line := fmt.Sprintf("  #%d %s %v: %s", f.Index, f.Input.Type, f.Input.Value, f.Reason)
		if isWriterTerminal(w) {
			line = warn.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, ach := range res.Unlocked {
		if _, err := fmt.Fprintf(w, "Achievement unlocked: %s\n", ach.Title); err != nil {
			return err
		}
	}
	for _, c := range res.Completed {
		if _, err := fmt.Fprintf(w, "Challenge completed: %s\n", c.Title); err != nil {
			return err
		}
	}
	return nil
}
