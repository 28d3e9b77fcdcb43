package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

func newSuggestCmd() *cobra.Command {
	var (
		threshold float64
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "suggest [bug-id]",
		Short: "Suggest an RCA for a bug",
		Long: `Fetch the bug, retrieve up to three similar resolved bugs whose distance is
within --threshold and ask the language model for the most likely root cause.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bugID, err := strconv.Atoi(args[0])
			if err != nil || bugID <= 0 {
				return fmt.Errorf("invalid bug id: %s", args[0])
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, appOptions{withLLM: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("threshold") {
				threshold = *a.cfg.Suggest.Threshold
			}

			result, err := a.suggester.SuggestRCA(ctx, bugID, threshold)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printSuggestion(cmd, bugID, result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 1.0, "maximum distance for a past bug to count as similar")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func printSuggestion(cmd *cobra.Command, bugID int, s *models.Suggestion) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(out, "%s\n\n%s\n\n", cyan(fmt.Sprintf("Suggested RCA for bug %d", bugID)), s.Suggestion)

	if !s.Grounded() {
		if s.ReferenceMessage != nil {
			fmt.Fprintln(out, yellow(*s.ReferenceMessage))
		}
		return
	}

	fmt.Fprintln(out, cyan("References"))
	for _, ref := range s.References {
		fmt.Fprintf(out, "  - Bug %d (score %.4f)\n", ref.BugID, ref.Score)
	}
}
