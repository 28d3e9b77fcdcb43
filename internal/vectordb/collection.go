package vectordb

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// EnsureCollection creates the collection if it doesn't exist
func (c *Client) EnsureCollection(ctx context.Context, name string, dimensions int) error {
	exists, err := c.qdrant.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = c.qdrant.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimensions),
			Distance: qdrantDistance(c.distance),
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	_, err = c.qdrant.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: name,
		FieldName:      payloadID,
		FieldType:      qdrant.PtrOf(qdrant.FieldType_FieldTypeInteger),
	})
	if err != nil {
		return fmt.Errorf("failed to create index for %s: %w", payloadID, err)
	}

	return nil
}

// CollectionExists checks if a collection exists
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	return c.qdrant.CollectionExists(ctx, name)
}

// Count returns the number of points stored in a collection
func (c *Client) Count(ctx context.Context, name string) (uint64, error) {
	n, err := c.qdrant.Count(ctx, &qdrant.CountPoints{
		CollectionName: name,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}

func qdrantDistance(distance string) qdrant.Distance {
	if distance == "cosine" {
		return qdrant.Distance_Cosine
	}
	return qdrant.Distance_Euclid
}
