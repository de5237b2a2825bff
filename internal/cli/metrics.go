package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/metrics"
)

func newMetricsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print current figures in the Prometheus text exposition format",
		Long: `Prints tracker, Green IT and ledger gauges in the Prometheus text format,
suitable for a node_exporter textfile collector.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				c := metrics.NewCollector()
				c.ObserveTracker(a.engine.TrackerSnapshot(doc, engine.SnapshotOptions{}))
				c.ObserveGreenIT(a.engine.GreenITSnapshot(doc))
				if a.dispatcher != nil {
					c.ObserveLedger(a.dispatcher.Stats())
				}
				return c.WriteText(cmd.OutOrStdout())
			})
		},
	}
}
