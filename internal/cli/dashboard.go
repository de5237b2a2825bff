package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/tui"
)

func newDashboardCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !tui.IsTTY() {
				return errors.New("the dashboard needs an interactive terminal; use stats or greenit totals instead")
			}
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				nf := formatter(flags)
				snap := a.engine.TrackerSnapshot(doc, engine.SnapshotOptions{})
				data := tui.DashboardData{
					Tracker:     snap,
					GreenIT:     a.engine.GreenITSnapshot(doc),
					Activities:  a.engine.Activities(doc, 0, true),
					Equivalency: greenops.Describe(ctx, snap.Stats.TotalCarbon, nf),
				}
				return tui.RunDashboard(ctx, data, nf)
			})
		},
	}
}
