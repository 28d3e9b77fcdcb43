package vectordb

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// Payload keys
const (
	payloadID     = "id"
	payloadTitle  = "title"
	payloadText   = "text"
	payloadSource = "source"
)

// UpsertDocuments inserts or replaces documents and waits until Qdrant has
// persisted them
func (c *Client) UpsertDocuments(ctx context.Context, collection, source string, docs []*models.IngestedDocument, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("documents and vectors length mismatch: %d != %d", len(docs), len(vectors))
	}
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		points[i] = documentToPoint(source, doc, vectors[i])
	}

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("batch upsert failed: %w", err)
	}
	return nil
}

// documentToPoint converts a document to a Qdrant point
func documentToPoint(source string, doc *models.IngestedDocument, vector []float32) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(doc.PointUUID(source)),
		Vectors: qdrant.NewVectors(vector...),
		Payload: map[string]*qdrant.Value{
			payloadID:     qdrant.NewValueInt(int64(doc.BugID)),
			payloadTitle:  qdrant.NewValueString(doc.Title),
			payloadText:   qdrant.NewValueString(doc.Text),
			payloadSource: qdrant.NewValueString(source),
		},
	}
}
