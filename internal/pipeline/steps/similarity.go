package steps

import (
	"context"

	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// SimilarityFinder defines the interface for similarity search
type SimilarityFinder interface {
	FindSimilar(ctx context.Context, text string, k int) ([]models.SimilarityMatch, error)
}

// SimilaritySearch fetches the k nearest resolved bugs for the query.
type SimilaritySearch struct {
	finder SimilarityFinder
}

// NewSimilaritySearch creates a new similarity search step
func NewSimilaritySearch(finder SimilarityFinder) *SimilaritySearch {
	return &SimilaritySearch{finder: finder}
}

func (s *SimilaritySearch) Name() string {
	return "similarity_search"
}

func (s *SimilaritySearch) Run(ctx context.Context, st core.State) (core.State, error) {
	if !st.IndexReady {
		st.Matches = nil
		return st, nil
	}

	matches, err := s.finder.FindSimilar(ctx, st.Query, st.Request.TopK)
	if err != nil {
		return st, err
	}
	st.Matches = matches
	return st, nil
}
