package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/internal/metrics"
	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// NoGroundingMessage accompanies suggestions made without any historical match
const NoGroundingMessage = "No similar historical bugs were found within the similarity threshold. " +
	"This RCA suggestion is generated from general model knowledge only and is not grounded in historical bug data."

// ErrInvalidThreshold is returned for negative or NaN thresholds
var ErrInvalidThreshold = errors.New("threshold must be a non-negative number")

// Suggester runs the suggestion pipeline
type Suggester struct {
	steps  []core.Step
	topK   int
	logger *zap.Logger
}

// NewSuggester creates a suggester over the given steps. topK is the number
// of neighbours fetched before the threshold cutoff.
func NewSuggester(steps []core.Step, topK int, logger *zap.Logger) *Suggester {
	if topK <= 0 {
		topK = 3
	}
	return &Suggester{steps: steps, topK: topK, logger: logger}
}

// SuggestRCA proposes an RCA for bugID grounded in indexed bugs whose
// distance is at most threshold. Nothing is cached; every call recomputes.
func (s *Suggester) SuggestRCA(ctx context.Context, bugID int, threshold float64) (*models.Suggestion, error) {
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	start := time.Now()
	defer func() {
		metrics.SuggestionDuration.Observe(time.Since(start).Seconds())
	}()

	log := s.logger.With(zap.Int("bug_id", bugID), zap.Float64("threshold", threshold))

	st, err := core.Run(ctx, s.steps, core.State{
		Request: core.Request{BugID: bugID, Threshold: threshold, TopK: s.topK},
	})
	if err != nil {
		metrics.SuggestionsTotal.WithLabelValues("error", "false").Inc()
		log.Error("rca suggestion failed", zap.Error(err))
		return nil, err
	}

	result := buildSuggestion(st)
	metrics.SuggestionsTotal.WithLabelValues("ok", strconv.FormatBool(result.Grounded())).Inc()
	log.Info("rca suggestion generated",
		zap.Int("matches", len(st.Matches)),
		zap.Int("references", len(result.References)))

	return result, nil
}

func buildSuggestion(st core.State) *models.Suggestion {
	refs := make([]models.Reference, 0, len(st.Grounding))
	for _, m := range st.Grounding {
		refs = append(refs, models.Reference{BugID: m.BugID, Score: m.Score})
	}

	result := &models.Suggestion{
		Suggestion: st.Suggestion,
		References: refs,
	}
	if len(refs) == 0 {
		msg := NoGroundingMessage
		result.ReferenceMessage = &msg
	}
	return result
}
