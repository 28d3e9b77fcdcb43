package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Kavirubc/rca-assist/internal/processor"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

func newIngestCmd() *cobra.Command {
	var (
		every  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Index newly resolved bugs",
		Long: `Fetch every bug tagged as resolved that is not yet in the ledger, embed it
and upsert it into the vector index. With --every the command keeps running
and repeats on the given interval (e.g. 24h, 7d).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, appOptions{dryRun: dryRun})
			if err != nil {
				return err
			}
			defer a.Close()

			if every != "" {
				sched, err := processor.NewScheduler(a.ingester, every, a.logger.Named("scheduler"))
				if err != nil {
					return err
				}
				return sched.Run(ctx)
			}

			stats, err := a.ingester.IngestNewBugs(ctx)
			if err != nil {
				return fmt.Errorf("ingestion failed: %w", err)
			}
			printIngestStats(cmd, stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&every, "every", "", "repeat ingestion on this interval (e.g. 24h, 7d)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "fetch and embed but skip index and ledger writes")

	return cmd
}

func printIngestStats(cmd *cobra.Command, stats *models.IngestStats) {
	out := cmd.OutOrStdout()
	if stats.NothingToDo {
		fmt.Fprintf(out, "%s (%d tagged bugs already indexed)\n", color.GreenString("No new bugs to ingest"), stats.Tagged)
		return
	}
	if stats.DryRun {
		fmt.Fprintln(out, color.YellowString("DRY RUN - nothing was written"))
	}
	fmt.Fprintf(out, "Tagged: %d | New: %d | Indexed: %d | Duration: %dms\n",
		stats.Tagged, stats.New, stats.Indexed, stats.DurationMs)
}
