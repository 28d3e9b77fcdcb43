package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
)

const promptTemplate = `You are an expert software engineer who provides RCA (Root Cause Analysis) suggestions
based on past resolved bugs.

--- New Bug ---
{query}

--- Similar Past RCA Context ---
{context}

Suggest the most likely RCA for the above bug in a clear, concise way.`

// Completer is the generative text service
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Completion renders the prompt and asks the model for the RCA.
type Completion struct {
	llm Completer
}

// NewCompletion creates a new completion step
func NewCompletion(llm Completer) *Completion {
	return &Completion{llm: llm}
}

func (s *Completion) Name() string {
	return "completion"
}

func (s *Completion) Run(ctx context.Context, st core.State) (core.State, error) {
	st.Prompt = RenderPrompt(st.Query, st.Context)

	text, err := s.llm.Complete(ctx, st.Prompt)
	if err != nil {
		return st, fmt.Errorf("completion failed: %w", err)
	}
	st.Suggestion = text
	return st, nil
}

// RenderPrompt fills the fixed template. Placeholders are substituted in one
// pass so text inside the query cannot inject a second substitution.
func RenderPrompt(query, context string) string {
	return strings.NewReplacer("{query}", query, "{context}", context).Replace(promptTemplate)
}
