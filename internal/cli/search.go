package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search indexed bugs by free text (debugging/testing)",
		Long:  `Embed the query and list the closest indexed bugs with their distance.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")

			a, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.finder.Search(ctx, query, limit)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No similar bugs found")
				return nil
			}

			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Fprintf(out, "Found %d similar bugs:\n\n", len(results))
			for i, r := range results {
				fmt.Fprintf(out, "%d. Bug %d - %s\n", i+1, r.BugID, r.Title)
				fmt.Fprintf(out, "   %s\n\n", gray(fmt.Sprintf("distance %.4f", r.Score)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results to return")

	return cmd
}
