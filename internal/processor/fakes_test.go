package processor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Kavirubc/rca-assist/internal/ado"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

type fakeSource struct {
	tagged  []int
	bugs    map[int]*models.BugRecord
	fetched []int
}

func (f *fakeSource) GetBug(ctx context.Context, id int) (*models.BugRecord, error) {
	f.fetched = append(f.fetched, id)
	bug, ok := f.bugs[id]
	if !ok {
		return nil, &ado.FetchError{BugID: id, StatusCode: 404, Message: "not found"}
	}
	return bug, nil
}

func (f *fakeSource) QueryTaggedBugIDs(ctx context.Context, tag string) ([]int, error) {
	return f.tagged, nil
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1}
	}
	return out, nil
}

type fakeIndex struct {
	mu         sync.Mutex
	exists     bool
	points     map[string]*models.IngestedDocument
	upsertErr  error
	upserts    int
	matches    []models.SimilarityMatch
	lastSearch int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{points: make(map[string]*models.IngestedDocument)}
}

func (f *fakeIndex) CollectionExists(ctx context.Context, name string) (bool, error) {
	return f.exists, nil
}

func (f *fakeIndex) EnsureCollection(ctx context.Context, name string, dimensions int) error {
	f.exists = true
	return nil
}

func (f *fakeIndex) UpsertDocuments(ctx context.Context, collection, source string, docs []*models.IngestedDocument, vectors [][]float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if len(docs) != len(vectors) {
		return fmt.Errorf("mismatch")
	}
	f.upserts++
	for _, d := range docs {
		f.points[d.PointUUID(source)] = d
	}
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, collection string, vector []float32, limit int) ([]models.SimilarityMatch, error) {
	f.lastSearch = limit
	out := append([]models.SimilarityMatch(nil), f.matches...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeIndex) Count(ctx context.Context, name string) (uint64, error) {
	return uint64(len(f.points)), nil
}
