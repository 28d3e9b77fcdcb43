// Package core defines the state and step contract of the suggestion pipeline.
package core

import (
	"context"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// Request is the input of one suggestion
type Request struct {
	BugID     int
	Threshold float64
	TopK      int
}

// State carries a request through the pipeline. Steps receive it by value
// and return an updated copy; slices held by a State are never modified in
// place once set.
type State struct {
	Request Request

	// IndexReady is false when no collection exists even after bootstrap
	IndexReady bool

	Bug   *models.BugRecord
	Query string

	// Matches are the raw nearest neighbours, closest first
	Matches []models.SimilarityMatch
	// Grounding are the matches that passed the threshold, closest first
	Grounding []models.SimilarityMatch

	Context    string
	Prompt     string
	Suggestion string
}

// Step defines a single unit of work in the pipeline.
type Step interface {
	// Name returns the identifier used in logs
	Name() string
	// Run returns the next state. Any error halts the pipeline.
	Run(ctx context.Context, st State) (State, error)
}

// Run executes steps in order, feeding each the previous step's state
func Run(ctx context.Context, steps []Step, st State) (State, error) {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		next, err := step.Run(ctx, st)
		if err != nil {
			return st, err
		}
		st = next
	}
	return st, nil
}
