package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/ledger"
)

// ledgerRow is one listed transaction, journaled or held in the state document.
type ledgerRow struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Status    ledger.Status `json:"status,omitempty"`
	Hash      string        `json:"hash,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

type ledgerView struct {
	Source       string                `json:"source"`
	Transactions []ledgerRow           `json:"transactions"`
	Counts       map[ledger.Status]int `json:"counts,omitempty"`
}

func newLedgerCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect recorded Green IT calculations",
	}
	cmd.AddCommand(newLedgerListCmd(flags))
	return cmd
}

func newLedgerListCmd(flags *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded transactions, newest first",
		Long: `Lists transactions from the ledger journal. When the journal is disabled or
unavailable the transactions kept in the state document are listed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				view, err := a.ledgerView(ctx, limit)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, view, func(w io.Writer, _ bool) error {
					return renderLedger(w, view)
				})
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum transactions to list (0 lists all)")
	return cmd
}

// ledgerView reads from the journal when one is open, else from the document.
func (a *app) ledgerView(ctx context.Context, limit int) (ledgerView, error) {
	if a.journal != nil {
		// Flush pending records so the listing includes this run's submissions.
		if a.dispatcher != nil {
			if err := a.dispatcher.Close(); err != nil {
				return ledgerView{}, err
			}
		}
		txs, err := a.journal.List(ctx, limit)
		if err != nil {
			return ledgerView{}, err
		}
		counts, err := a.journal.Count(ctx)
		if err != nil {
			return ledgerView{}, err
		}
		view := ledgerView{Source: "journal", Counts: counts, Transactions: make([]ledgerRow, 0, len(txs))}
		for _, t := range txs {
			view.Transactions = append(view.Transactions, ledgerRow{
				ID: t.ID, Type: t.Type, Status: t.Status, Hash: t.Hash, Timestamp: t.Timestamp,
			})
		}
		return view, nil
	}

	doc, err := a.load(ctx)
	if err != nil {
		return ledgerView{}, err
	}
	entries := doc.GreenIT.Transactions
	view := ledgerView{Source: "state", Transactions: []ledgerRow{}}
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && len(view.Transactions) == limit {
			break
		}
		e := entries[i]
		view.Transactions = append(view.Transactions, ledgerRow{ID: e.ID, Type: string(e.Type), Timestamp: e.Timestamp})
	}
	return view, nil
}

func renderLedger(w io.Writer, view ledgerView) error {
	if len(view.Transactions) == 0 {
		_, err := fmt.Fprintln(w, "No transactions recorded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRANSACTION\tTYPE\tSTATUS\tTIMESTAMP\t")
	for _, t := range view.Transactions {
		status := string(t.Status)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", t.ID, t.Type, status, t.Timestamp.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if view.Counts != nil {
		_, err := fmt.Fprintf(w, "\n%d verified, %d pending (%s)\n",
			view.Counts[ledger.StatusVerified], view.Counts[ledger.StatusPending], view.Source)
		return err
	}
	_, err := fmt.Fprintf(w, "\nsource: %s\n", view.Source)
	return err
}
