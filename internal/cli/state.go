package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/migration"
	"github.com/rshade/ecotrack/internal/store"
)

func newStateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Import, seed or reset the persisted state",
	}
	cmd.AddCommand(
		newStateImportCmd(flags),
		newStateSampleCmd(flags),
		newStateResetCmd(flags),
		newStatePathCmd(flags),
	)
	return cmd
}

func newStateImportCmd(flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import-legacy <export.json>",
		Short: "Import data exported from the browser application",
		Long: `Imports a JSON dump of the browser application's local storage (the
ecoTrackerData, ecoTrackerGamification and greenITData keys). Footprints,
statistics and totals are recomputed. Existing state is backed up first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				rep, err := migration.RunImport(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], a.store, a.engine.Now(), yes)
				if errors.Is(err, migration.ErrImportDeclined) {
					return nil
				}
				if err != nil {
					return err
				}
				for _, s := range rep.Skipped {
					logger.Warn().Ctx(ctx).Str("reason", s).Msg("legacy activity skipped")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace existing state without asking")
	return cmd
}

func newStateSampleCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Seed the sample activities shown to new users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				var added int
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					out, n := a.engine.LoadSamples(ctx, doc)
					added = n
					return out, nil
				})
				if err != nil {
					return err
				}
				if added == 0 {
					cmd.Println("Samples not added: the tracker already holds activities")
					return nil
				}
				cmd.Printf("Added %d sample activities\n", added)
				return nil
			})
		},
	}
}

func newStateResetCmd(flags *globalFlags) *cobra.Command {
	var (
		trackerOnly bool
		greenITOnly bool
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear tracker and Green IT data",
		Long: `Clears the tracker activities and progress, the Green IT slots, or both.
Settings and the Green IT transaction history are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if trackerOnly && greenITOnly {
				return errors.New("--tracker and --greenit are mutually exclusive")
			}
			what := "all tracker and Green IT data"
			switch {
			case trackerOnly:
				what = "all tracker activities and progress"
			case greenITOnly:
				what = "all Green IT calculations"
			}

			if !yes {
				if f, ok := cmd.InOrStdin().(*os.File); ok && !isTerminal(f) {
					return errors.New("refusing to reset without --yes in a non-interactive session")
				}
				res := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), fmt.Sprintf("Delete %s?", what))
				if !res.Accepted {
					cmd.Println("Reset cancelled")
					return nil
				}
			}

			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					if !greenITOnly {
						doc = a.engine.ResetTracker(ctx, doc)
					}
					if !trackerOnly {
						doc = a.engine.ResetGreenIT(ctx, doc)
					}
					return doc, nil
				})
				if err != nil {
					return err
				}
				cmd.Printf("Deleted %s\n", what)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.BoolVar(&trackerOnly, "tracker", false, "reset only the tracker")
	f.BoolVar(&greenITOnly, "greenit", false, "reset only Green IT")
	f.BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newStatePathCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the state document path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(_ context.Context, a *app) error {
				cmd.Println(a.store.Path())
				return nil
			})
		},
	}
}
