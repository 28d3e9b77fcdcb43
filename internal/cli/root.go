// Package cli implements the rca-assist command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "rca-assist",
	Short: "Root cause analysis suggestions from past bugs",
	Long: `rca-assist suggests a root cause for a bug by retrieving similar,
already-resolved bugs from a vector index and asking a language model.

Resolved bugs tagged "RCA Done" are ingested incrementally into Qdrant.`,
	SilenceUsage: true,
}

// Execute runs the root command, cancelling on SIGINT or SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rca-assist version %s\n", version)
		},
	}
}
