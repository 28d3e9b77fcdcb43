// Package pipeline answers "what is the likely RCA for bug X".
package pipeline

import (
	"go.uber.org/zap"

	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
	"github.com/Kavirubc/rca-assist/internal/pipeline/steps"
)

// Finder searches the index and reports whether it exists
type Finder interface {
	steps.IndexChecker
	steps.SimilarityFinder
}

// Builder constructs the suggestion pipeline.
type Builder struct {
	source   steps.BugFetcher
	finder   Finder
	ingester steps.Ingester
	llm      steps.Completer
	logger   *zap.Logger
}

// NewBuilder creates a new pipeline builder
func NewBuilder(source steps.BugFetcher, finder Finder, ingester steps.Ingester, llm steps.Completer, logger *zap.Logger) *Builder {
	return &Builder{
		source:   source,
		finder:   finder,
		ingester: ingester,
		llm:      llm,
		logger:   logger,
	}
}

// Build returns the steps in execution order
func (b *Builder) Build() []core.Step {
	return []core.Step{
		steps.NewIndexBootstrap(b.finder, b.ingester, b.logger),
		steps.NewFetchBug(b.source),
		steps.NewSimilaritySearch(b.finder),
		steps.NewThresholdFilter(),
		steps.NewContextBuilder(),
		steps.NewCompletion(b.llm),
	}
}
