package vectordb

import (
	"context"
	"fmt"
	"sort"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// Search returns up to limit nearest documents ordered by ascending distance
func (c *Client) Search(ctx context.Context, collection string, vector []float32, limit int) ([]models.SimilarityMatch, error) {
	points, err := c.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	matches := make([]models.SimilarityMatch, 0, len(points))
	for _, point := range points {
		matches = append(matches, pointToMatch(point.Payload, point.Score, c.distance))
	}
	sortByDistance(matches)

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// pointToMatch converts a scored point into a match. Cosine similarity is
// turned into a distance so every caller can treat lower as closer.
func pointToMatch(payload map[string]*qdrant.Value, score float32, distance string) models.SimilarityMatch {
	m := models.SimilarityMatch{Score: float64(score)}
	if distance == "cosine" {
		m.Score = 1 - m.Score
	}

	if v := payload[payloadID]; v != nil {
		m.BugID = int(v.GetIntegerValue())
	}
	if v := payload[payloadTitle]; v != nil {
		m.Title = v.GetStringValue()
	}
	if v := payload[payloadText]; v != nil {
		m.Text = v.GetStringValue()
	}
	return m
}

func sortByDistance(matches []models.SimilarityMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
}
