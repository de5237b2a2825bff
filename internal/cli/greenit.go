package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenit"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/store"
)

func newGreenITCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "greenit",
		Aliases: []string{"it"},
		Short:   "Estimate the energy, carbon and cost of IT infrastructure",
	}
	cmd.AddCommand(
		newGreenITCalcCmd(flags),
		newGreenITTotalsCmd(flags),
		newGreenITPracticesCmd(flags),
		newGreenITResetCmd(flags),
	)
	return cmd
}

func newGreenITCalcCmd(flags *globalFlags) *cobra.Command {
	var values map[string]string

	slots := make([]string, 0, len(greenit.Slots()))
	for _, s := range greenit.Slots() {
		slots = append(slots, string(s))
	}

	cmd := &cobra.Command{
		Use:       "calc <" + strings.Join(slots, "|") + ">",
		Short:     "Run a calculator and store its result in the slot",
		ValidArgs: slots,
		Example: `  ecotrack greenit calc datacenter --set server-count=10 --set pue=1.3
  ecotrack greenit calc network --set wifi-count=12 --set network-utilization=40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := greenit.ParseSlot(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				var res engine.CalculateResult
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					out, r, calcErr := a.engine.CalculateForm(ctx, doc, slot, values)
					res = r
					return out, calcErr
				})
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, res, func(w io.Writer, _ bool) error {
					return renderCalculation(w, res, formatter(flags))
				})
			})
		},
	}
	cmd.Flags().StringToStringVar(&values, "set", nil, "form field as key=value (repeatable); missing fields take defaults")
	return cmd
}

func renderCalculation(w io.Writer, res engine.CalculateResult, nf *greenops.Formatter) error {
	c := res.Calculation
	r := c.Result
	fmt.Fprintf(w, "%s\n", c.Slot.Label())
	fmt.Fprintf(w, "  Energy:     %s kWh/month\n", nf.Float(r.Energy, 0))
	fmt.Fprintf(w, "  Carbon:     %s kg CO2/month\n", nf.Float(r.Carbon, 0))
	if r.Cost != nil {
		fmt.Fprintf(w, "  Cost:       %s/month\n", nf.Float(*r.Cost, 2))
	}
	if r.Efficiency != nil {
		fmt.Fprintf(w, "  Efficiency: %s%%\n", nf.Float(*r.Efficiency, 0))
	}
	if r.Quality == greenit.QualityDefaulted {
		fmt.Fprintln(w, "  Some inputs were defaulted:")
		for _, is := range r.Issues {
			fmt.Fprintf(w, "    %s: %s (using %s)\n", is.Field, is.Reason, is.Default)
		}
	}
	for _, s := range c.Suggestions {
		fmt.Fprintf(w, "  > %s: %s\n", s.Title, s.Description)
	}
	if res.TransactionID != "" {
		fmt.Fprintf(w, "  Transaction %s", res.TransactionID)
		if !res.Submitted {
			fmt.Fprint(w, " (not journaled)")
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w, "Totals: %s kWh, %s kg CO2, %s\n",
		nf.Float(res.Totals.Energy, 0), nf.Float(res.Totals.Carbon, 0), nf.Float(res.Totals.Cost, 2))
	return err
}

func newGreenITTotalsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show Green IT totals, infrastructure status and energy split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				doc, err := a.load(ctx)
				if err != nil {
					return err
				}
				snap := a.engine.GreenITSnapshot(doc)
				return render(cmd.OutOrStdout(), flags, snap, func(w io.Writer, styled bool) error {
					return renderGreenIT(w, snap, formatter(flags), styled)
				})
			})
		},
	}
}

func renderGreenIT(w io.Writer, snap engine.GreenITSnapshot, nf *greenops.Formatter, styled bool) error {
	t := snap.Totals
	var b strings.Builder
	fmt.Fprintf(&b, "Energy:      %s kWh/month\n", nf.Float(t.Energy, 0))
	fmt.Fprintf(&b, "Carbon:      %s kg CO2/month (%s)\n", nf.Float(t.Carbon, 0), snap.SidebarCarbon)
	fmt.Fprintf(&b, "Cost:        %s %s/month\n", nf.Float(t.Cost, 2), snap.Settings.Currency)
	fmt.Fprintf(&b, "Efficiency:  %s%%\n", nf.Float(t.Efficiency, 0))
	fmt.Fprintf(&b, "Slots:       %d/%d\n", t.Slots, len(greenit.Slots()))

	if len(snap.Status) > 0 {
		b.WriteString("\nInfrastructure:\n")
		for _, s := range snap.Status {
			fmt.Fprintf(&b, "  %-24s %8s kWh %s %3d%% %s\n",
				s.Label, nf.Float(s.Energy, 0),
				renderProgressBar(float64(s.Utilization), 10, colorOK(), styled), s.Utilization, s.Level)
		}
	}

	b.WriteString("\nEnergy split")
	if snap.Split.IsPlaceholder {
		b.WriteString(" (sample values)")
	}
	b.WriteString(":\n")
	shares := snap.Split.Share()
	for i, p := range snap.Split.Parts {
		fmt.Fprintf(&b, "  %-24s %s%%\n", p.Label, nf.Float(shares[i], 1))
	}
	fmt.Fprintf(&b, "\nLedger transactions: %d", snap.TransactionCount)

	content := b.String()
	if styled {
		return box(w, "GREEN IT", content)
	}
	_, err := fmt.Fprintln(w, content)
	return err
}

func newGreenITPracticesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "practices",
		Aliases: []string{"recommend"},
		Short:   "List Green IT best practices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			practices := greenit.Catalogue()
			return render(cmd.OutOrStdout(), flags, practices, func(w io.Writer, _ bool) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "PRACTICE\tCATEGORY\tIMPACT\tSAVINGS\tCOMPLEXITY\t")
				for _, p := range practices {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", p.Title, p.Category, p.Impact, p.Savings, p.Complexity)
				}
				return tw.Flush()
			})
		},
	}
}

func newGreenITResetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [slot]",
		Short: "Clear one slot, or every slot when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				_, err := a.mutate(ctx, func(doc store.Document) (store.Document, error) {
					if len(args) == 0 {
						return a.engine.ResetGreenIT(ctx, doc), nil
					}
					slot, err := greenit.ParseSlot(args[0])
					if err != nil {
						return doc, err
					}
					return a.engine.ResetSlot(ctx, doc, slot)
				})
				if err != nil {
					return err
				}
				if len(args) == 0 {
					cmd.Println("All Green IT slots cleared")
				} else {
					cmd.Printf("Slot %s cleared\n", args[0])
				}
				return nil
			})
		},
	}
}
