package processor

import (
	"context"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// Ledger is the persisted set of ingested bug ids
type Ledger interface {
	Load() (map[int]struct{}, error)
	Save(ids map[int]struct{}) error
}

// Embedder turns text into vectors
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Index is the vector store holding ingested documents
type Index interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	EnsureCollection(ctx context.Context, name string, dimensions int) error
	UpsertDocuments(ctx context.Context, collection, source string, docs []*models.IngestedDocument, vectors [][]float32) error
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]models.SimilarityMatch, error)
	Count(ctx context.Context, name string) (uint64, error)
}
