package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/internal/ledger"
	"github.com/Kavirubc/rca-assist/internal/metrics"
	"github.com/Kavirubc/rca-assist/internal/tracker"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// IngestOptions configures an Ingester
type IngestOptions struct {
	Tag        string
	Collection string
	Source     string // tracker identity, namespaces point ids
	Dimensions int
	BatchSize  int
	DryRun     bool
}

// Ingester absorbs newly resolved bugs into the vector index
type Ingester struct {
	source   tracker.Source
	ledger   Ledger
	embedder Embedder
	index    Index
	opts     IngestOptions
	logger   *zap.Logger

	// serialises runs started from the HTTP API, the scheduler and bootstrap
	mu sync.Mutex
}

// NewIngester creates a new ingester
func NewIngester(source tracker.Source, l Ledger, embedder Embedder, index Index, opts IngestOptions, logger *zap.Logger) *Ingester {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &Ingester{
		source:   source,
		ledger:   l,
		embedder: embedder,
		index:    index,
		opts:     opts,
		logger:   logger,
	}
}

// IngestNewBugs indexes every tagged bug missing from the ledger. The ledger
// is only written after the index has accepted the whole batch; any failure
// before that leaves both untouched.
func (in *Ingester) IngestNewBugs(ctx context.Context) (*models.IngestStats, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	start := time.Now()
	stats, err := in.ingest(ctx)
	if err != nil {
		metrics.IngestRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	stats.DurationMs = int(time.Since(start).Milliseconds())

	switch {
	case stats.NothingToDo:
		metrics.IngestRunsTotal.WithLabelValues("noop").Inc()
	case !stats.DryRun:
		metrics.IngestRunsTotal.WithLabelValues("ok").Inc()
		metrics.IngestedDocumentsTotal.Add(float64(stats.Indexed))
	}
	return stats, nil
}

func (in *Ingester) ingest(ctx context.Context) (*models.IngestStats, error) {
	stats := &models.IngestStats{DryRun: in.opts.DryRun}

	known, err := in.ledger.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	// A ledger without a collection describes an index that no longer
	// exists, so every tagged bug is indexed again.
	exists, err := in.index.CollectionExists(ctx, in.opts.Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists && len(known) > 0 {
		in.logger.Warn("collection missing, rebuilding from all tagged bugs",
			zap.String("collection", in.opts.Collection), zap.Int("ledger_size", len(known)))
		known = map[int]struct{}{}
	}

	tagged, err := in.source.QueryTaggedBugIDs(ctx, in.opts.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to query tagged bugs: %w", err)
	}
	stats.Tagged = len(tagged)

	newIDs := ledger.Difference(tagged, known)
	stats.New = len(newIDs)
	if len(newIDs) == 0 {
		in.logger.Info("no new bugs to ingest", zap.Int("tagged", len(tagged)), zap.Int("known", len(known)))
		stats.NothingToDo = true
		return stats, nil
	}
	in.logger.Info("ingesting new bugs", zap.Int("new", len(newIDs)), zap.Ints("ids", newIDs))

	docs := make([]*models.IngestedDocument, 0, len(newIDs))
	for _, id := range newIDs {
		bug, err := in.source.GetBug(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("aborting ingestion: %w", err)
		}
		if bug.RCADetail == "" {
			in.logger.Warn("tagged bug has no RCA text", zap.Int("bug_id", id))
		}
		docs = append(docs, bug.ToDocument())
	}

	vectors, err := in.embedDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}

	if in.opts.DryRun {
		in.logger.Info("dry run, skipping index and ledger writes", zap.Int("documents", len(docs)))
		return stats, nil
	}

	if err := in.index.EnsureCollection(ctx, in.opts.Collection, in.opts.Dimensions); err != nil {
		return nil, fmt.Errorf("failed to ensure collection: %w", err)
	}
	if err := in.index.UpsertDocuments(ctx, in.opts.Collection, in.opts.Source, docs, vectors); err != nil {
		return nil, fmt.Errorf("failed to upsert documents: %w", err)
	}
	stats.Indexed = len(docs)

	if err := in.ledger.Save(ledger.Union(known, newIDs)); err != nil {
		return nil, fmt.Errorf("documents indexed but ledger not saved: %w", err)
	}

	in.logger.Info("ingestion complete", zap.Int("indexed", stats.Indexed))
	return stats, nil
}

// embedDocuments embeds docs in chunks of BatchSize
func (in *Ingester) embedDocuments(ctx context.Context, docs []*models.IngestedDocument) ([][]float32, error) {
	vectors := make([][]float32, 0, len(docs))
	for i := 0; i < len(docs); i += in.opts.BatchSize {
		end := min(i+in.opts.BatchSize, len(docs))

		texts := make([]string, 0, end-i)
		for _, doc := range docs[i:end] {
			texts = append(texts, doc.Text)
		}

		batch, err := in.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embeddings: %w", err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(batch), len(texts))
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
