package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// NoHistoryContext replaces the context when nothing passed the threshold
const NoHistoryContext = "No similar bugs found in historical RCA data."

// ContextBuilder renders the grounding matches into the prompt context.
type ContextBuilder struct{}

// NewContextBuilder creates a new context builder step
func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{}
}

func (s *ContextBuilder) Name() string {
	return "context_builder"
}

func (s *ContextBuilder) Run(ctx context.Context, st core.State) (core.State, error) {
	st.Context = BuildContext(st.Grounding)
	return st, nil
}

// BuildContext joins one block per match with blank lines
func BuildContext(matches []models.SimilarityMatch) string {
	if len(matches) == 0 {
		return NoHistoryContext
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, formatMatch(m))
	}
	return strings.Join(blocks, "\n\n")
}

func formatMatch(m models.SimilarityMatch) string {
	return fmt.Sprintf("Bug ID: %d (Similarity Score: %.4f)\nBug Title: %s\n%s", m.BugID, m.Score, m.Title, m.Text)
}
