package processor

import (
	"context"
	"fmt"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// SimilarityFinder searches the index for bugs similar to a piece of text
type SimilarityFinder struct {
	embedder   Embedder
	index      Index
	collection string
}

// NewSimilarityFinder creates a new similarity finder
func NewSimilarityFinder(embedder Embedder, index Index, collection string) *SimilarityFinder {
	return &SimilarityFinder{
		embedder:   embedder,
		index:      index,
		collection: collection,
	}
}

// IndexExists reports whether the collection has been created
func (sf *SimilarityFinder) IndexExists(ctx context.Context) (bool, error) {
	exists, err := sf.index.CollectionExists(ctx, sf.collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection: %w", err)
	}
	return exists, nil
}

// FindSimilar returns up to k matches for text, closest first
func (sf *SimilarityFinder) FindSimilar(ctx context.Context, text string, k int) ([]models.SimilarityMatch, error) {
	vector, err := sf.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	matches, err := sf.index.Search(ctx, sf.collection, vector, k)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Search is FindSimilar for free-form queries; a missing index yields no
// matches instead of an error
func (sf *SimilarityFinder) Search(ctx context.Context, query string, limit int) ([]models.SimilarityMatch, error) {
	exists, err := sf.IndexExists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return sf.FindSimilar(ctx, query, limit)
}
