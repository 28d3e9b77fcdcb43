package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Kavirubc/rca-assist/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfgPath := config.FindConfigPath(cfgFile)
			if cfgPath == "" {
				return fmt.Errorf("config file not found")
			}

			fmt.Fprintf(out, "Validating config: %s\n", cfgPath)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Fprintln(out, color.RedString("\nValidation errors:"))
				for _, e := range errs {
					fmt.Fprintf(out, "  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			fmt.Fprintln(out, color.GreenString("\nConfiguration is valid!"))
			fmt.Fprintf(out, "  - Tracker: %s (tag %q)\n", cfg.SourceName(), cfg.Tracker.Tag)
			fmt.Fprintf(out, "  - Qdrant URL: %s (collection %s, %s)\n", cfg.Qdrant.URL, cfg.Index.Collection, cfg.Index.Distance)
			fmt.Fprintf(out, "  - Primary embedding: %s (%s, %d dims)\n", cfg.Embedding.Primary.Provider, cfg.Embedding.Primary.Model, cfg.Embedding.Primary.Dimensions)
			if cfg.Embedding.Fallback.Provider != "" {
				fmt.Fprintf(out, "  - Fallback embedding: %s (%s)\n", cfg.Embedding.Fallback.Provider, cfg.Embedding.Fallback.Model)
			}
			fmt.Fprintf(out, "  - LLM: %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)
			fmt.Fprintf(out, "  - Ledger: %s\n", cfg.Ledger.Path)
			fmt.Fprintf(out, "  - Suggest: top %d within distance %.2f\n", cfg.Suggest.TopK, *cfg.Suggest.Threshold)

			return nil
		},
	}
}
