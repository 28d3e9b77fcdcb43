// Package tracker selects the issue tracker bugs are read from.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kavirubc/rca-assist/internal/ado"
	"github.com/Kavirubc/rca-assist/internal/config"
	"github.com/Kavirubc/rca-assist/internal/github"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

// ErrBugNotFound is returned when the tracker has no bug with the given id
var ErrBugNotFound = errors.New("bug not found")

// Source reads bugs from an issue tracker
type Source interface {
	// GetBug fetches one bug by id
	GetBug(ctx context.Context, id int) (*models.BugRecord, error)
	// QueryTaggedBugIDs returns the ids of bugs carrying tag
	QueryTaggedBugIDs(ctx context.Context, tag string) ([]int, error)
}

// New creates the source configured under tracker.provider
func New(cfg *config.Config) (Source, error) {
	switch cfg.Tracker.Provider {
	case "ado":
		c, err := ado.NewClient(&cfg.Tracker.ADO, cfg.RateLimits.TrackerRPS)
		if err != nil {
			return nil, err
		}
		return &source{inner: c, notFound: ado.IsNotFound}, nil
	case "github":
		c, err := github.NewClient(cfg.Tracker.GitHub.Repo, cfg.RateLimits.TrackerRPS)
		if err != nil {
			return nil, err
		}
		return &source{inner: c, notFound: func(err error) bool {
			return errors.Is(err, github.ErrNotFound)
		}}, nil
	default:
		return nil, fmt.Errorf("unknown tracker provider: %s", cfg.Tracker.Provider)
	}
}

// source maps provider specific not-found errors onto ErrBugNotFound
type source struct {
	inner    Source
	notFound func(error) bool
}

func (s *source) GetBug(ctx context.Context, id int) (*models.BugRecord, error) {
	bug, err := s.inner.GetBug(ctx, id)
	if err != nil {
		if s.notFound(err) {
			return nil, &notFoundError{id: id, err: err}
		}
		return nil, err
	}
	return bug, nil
}

func (s *source) QueryTaggedBugIDs(ctx context.Context, tag string) ([]int, error) {
	return s.inner.QueryTaggedBugIDs(ctx, tag)
}

// notFoundError keeps the tracker's message while matching ErrBugNotFound
type notFoundError struct {
	id  int
	err error
}

func (e *notFoundError) Error() string { return e.err.Error() }

func (e *notFoundError) Is(target error) bool { return target == ErrBugNotFound }

func (e *notFoundError) Unwrap() error { return e.err }
