package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Kavirubc/rca-assist/internal/processor"
	"github.com/Kavirubc/rca-assist/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve RCA suggestions and ingestion over HTTP. When ingest.schedule is set
ingestion also runs in the background on that interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, appOptions{withLLM: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			srv := server.New(a.suggester, a.ingester, server.Options{
				DefaultThreshold: *a.cfg.Suggest.Threshold,
				RequestTimeout:   a.cfg.Server.RequestTimeout,
			}, a.logger.Named("http"))

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(gctx, addr)
			})

			if a.cfg.Ingest.Schedule != "" {
				sched, err := processor.NewScheduler(a.ingester, a.cfg.Ingest.Schedule, a.logger.Named("scheduler"))
				if err != nil {
					return err
				}
				g.Go(func() error {
					return sched.Run(gctx)
				})
			} else {
				a.logger.Info("no ingest.schedule configured, ingestion runs on demand only", zap.String("endpoint", "POST /api/v1/ingest"))
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")

	return cmd
}
