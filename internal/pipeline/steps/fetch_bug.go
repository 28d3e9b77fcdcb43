package steps

import (
	"context"

	"github.com/Kavirubc/rca-assist/internal/pipeline/core"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// BugFetcher reads one bug from the tracker
type BugFetcher interface {
	GetBug(ctx context.Context, id int) (*models.BugRecord, error)
}

// FetchBug loads the target bug and derives the search query from it.
type FetchBug struct {
	source BugFetcher
}

// NewFetchBug creates a new fetch step
func NewFetchBug(source BugFetcher) *FetchBug {
	return &FetchBug{source: source}
}

func (s *FetchBug) Name() string {
	return "fetch_bug"
}

func (s *FetchBug) Run(ctx context.Context, st core.State) (core.State, error) {
	bug, err := s.source.GetBug(ctx, st.Request.BugID)
	if err != nil {
		return st, err
	}
	st.Bug = bug
	st.Query = bug.QueryText()
	return st, nil
}
