package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Kavirubc/rca-assist/internal/processor"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare the ledger with the vector index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := processor.CollectStatus(ctx, a.ledger, a.vdb, a.cfg.Index.Collection)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ledger:     %s (%d ids)\n", a.ledger.Path(), st.LedgerCount)
			if !st.IndexExists {
				fmt.Fprintf(out, "Collection: %s %s\n", st.Collection, color.YellowString("(not created yet)"))
			} else {
				fmt.Fprintf(out, "Collection: %s (%d points)\n", st.Collection, st.IndexedCount)
			}

			if st.InSync() {
				fmt.Fprintln(out, color.GreenString("Ledger and index are in sync"))
			} else {
				fmt.Fprintln(out, color.RedString("Ledger and index disagree; re-run ingest after removing the ledger to rebuild"))
			}
			return nil
		},
	}
}
