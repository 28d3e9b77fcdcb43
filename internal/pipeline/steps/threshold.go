package steps

import (
	"context"

	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// ThresholdFilter keeps matches whose distance is at most the threshold.
// It is a plain cutoff over the fetched matches, not a re-ranking.
type ThresholdFilter struct{}

// NewThresholdFilter creates a new threshold filter step
func NewThresholdFilter() *ThresholdFilter {
	return &ThresholdFilter{}
}

func (s *ThresholdFilter) Name() string {
	return "threshold_filter"
}

func (s *ThresholdFilter) Run(ctx context.Context, st core.State) (core.State, error) {
	st.Grounding = FilterByThreshold(st.Matches, st.Request.Threshold)
	return st, nil
}

// FilterByThreshold returns a new slice with the matches scoring <= threshold,
// in their original order
func FilterByThreshold(matches []models.SimilarityMatch, threshold float64) []models.SimilarityMatch {
	kept := make([]models.SimilarityMatch, 0, len(matches))
	for _, m := range matches {
		if m.Score <= threshold {
			kept = append(kept, m)
		}
	}
	return kept
}
