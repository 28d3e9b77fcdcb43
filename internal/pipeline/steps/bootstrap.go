package steps

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// IndexChecker reports whether the vector index exists
type IndexChecker interface {
	IndexExists(ctx context.Context) (bool, error)
}

// Ingester populates the vector index
type Ingester interface {
	IngestNewBugs(ctx context.Context) (*models.IngestStats, error)
}

// IndexBootstrap runs ingestion once when the index has never been built.
type IndexBootstrap struct {
	checker  IndexChecker
	ingester Ingester
	logger   *zap.Logger
}

// NewIndexBootstrap creates a new bootstrap step
func NewIndexBootstrap(checker IndexChecker, ingester Ingester, logger *zap.Logger) *IndexBootstrap {
	return &IndexBootstrap{checker: checker, ingester: ingester, logger: logger}
}

func (s *IndexBootstrap) Name() string {
	return "index_bootstrap"
}

func (s *IndexBootstrap) Run(ctx context.Context, st core.State) (core.State, error) {
	exists, err := s.checker.IndexExists(ctx)
	if err != nil {
		return st, err
	}
	if exists {
		st.IndexReady = true
		return st, nil
	}

	s.logger.Warn("vector index not found, running ingestion")
	if _, err := s.ingester.IngestNewBugs(ctx); err != nil {
		return st, fmt.Errorf("bootstrap ingestion failed: %w", err)
	}

	st.IndexReady, err = s.checker.IndexExists(ctx)
	if err != nil {
		return st, err
	}
	if !st.IndexReady {
		s.logger.Warn("no resolved bugs to index yet, continuing without history")
	}
	return st, nil
}
