package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/internal/config"
	"github.com/Kavirubc/rca-assist/internal/embedding"
	"github.com/Kavirubc/rca-assist/internal/ledger"
	"github.com/Kavirubc/rca-assist/internal/llm"
	"github.com/Kavirubc/rca-assist/internal/logging"
	"github.com/Kavirubc/rca-assist/internal/pipeline"
	"github.com/Kavirubc/rca-assist/internal/processor"
	"github.com/Kavirubc/rca-assist/internal/tracker"
	"github.com/Kavirubc/rca-assist/internal/vectordb"
)

// loadConfig finds, loads and validates the configuration
func loadConfig() (*config.Config, error) {
	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		return nil, fmt.Errorf("config file not found")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// app holds the wired dependencies shared by the commands
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	source    tracker.Source
	ledger    *ledger.Ledger
	embedder  *embedding.FallbackProvider
	vdb       *vectordb.Client
	llm       llm.Provider
	ingester  *processor.Ingester
	finder    *processor.SimilarityFinder
	suggester *pipeline.Suggester
}

type appOptions struct {
	dryRun  bool
	withLLM bool
}

// newApp builds every dependency from configuration
func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, ledger: ledger.New(cfg.Ledger.Path)}

	a.source, err = tracker.New(cfg)
	if err != nil {
		return nil, a.fail(fmt.Errorf("failed to create tracker client: %w", err))
	}

	a.embedder, err = embedding.NewFallbackProvider(ctx, &cfg.Embedding, cfg.RateLimits.EmbeddingRPS, logger)
	if err != nil {
		return nil, a.fail(fmt.Errorf("failed to create embedding provider: %w", err))
	}

	a.vdb, err = vectordb.NewClient(&cfg.Qdrant, cfg.Index.Distance)
	if err != nil {
		return nil, a.fail(fmt.Errorf("failed to create vector DB client: %w", err))
	}

	a.ingester = processor.NewIngester(a.source, a.ledger, a.embedder, a.vdb, processor.IngestOptions{
		Tag:        cfg.Tracker.Tag,
		Collection: cfg.Index.Collection,
		Source:     cfg.SourceName(),
		Dimensions: cfg.Index.Dimensions,
		BatchSize:  cfg.Ingest.BatchSize,
		DryRun:     opts.dryRun,
	}, logger.Named("ingest"))

	a.finder = processor.NewSimilarityFinder(a.embedder, a.vdb, cfg.Index.Collection)

	if opts.withLLM {
		a.llm, err = llm.New(ctx, &cfg.LLM)
		if err != nil {
			return nil, a.fail(fmt.Errorf("failed to create LLM provider: %w", err))
		}
		steps := pipeline.NewBuilder(a.source, a.finder, a.ingester, a.llm, logger.Named("bootstrap")).Build()
		a.suggester = pipeline.NewSuggester(steps, cfg.Suggest.TopK, logger.Named("suggest"))
	}

	return a, nil
}

func (a *app) fail(err error) error {
	a.Close()
	return err
}

// Close releases resources
func (a *app) Close() {
	if a.llm != nil {
		_ = a.llm.Close()
	}
	if a.vdb != nil {
		_ = a.vdb.Close()
	}
	if a.embedder != nil {
		_ = a.embedder.Close()
	}
	_ = a.logger.Sync()
}
