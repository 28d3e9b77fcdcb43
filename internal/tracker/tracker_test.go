package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavirubc/rca-assist/internal/ado"
	"github.com/Kavirubc/rca-assist/internal/config"
	"github.com/Kavirubc/rca-assist/pkg/models"
)

type stubSource struct {
	bug *models.BugRecord
	err error
}

func (s *stubSource) GetBug(ctx context.Context, id int) (*models.BugRecord, error) {
	return s.bug, s.err
}

func (s *stubSource) QueryTaggedBugIDs(ctx context.Context, tag string) ([]int, error) {
	return []int{3, 2, 1}, nil
}

func TestSource_MapsNotFound(t *testing.T) {
	fetchErr := &ado.FetchError{BugID: 9, StatusCode: 404, Message: "TF401232: Work item 9 does not exist"}
	s := &source{inner: &stubSource{err: fetchErr}, notFound: ado.IsNotFound}

	_, err := s.GetBug(context.Background(), 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBugNotFound)
	assert.Contains(t, err.Error(), "error fetching bug ID 9")

	var fe *ado.FetchError
	assert.True(t, errors.As(err, &fe), "original error stays reachable")
}

func TestSource_PassesOtherErrors(t *testing.T) {
	fetchErr := &ado.FetchError{BugID: 9, StatusCode: 500, Message: "boom"}
	s := &source{inner: &stubSource{err: fetchErr}, notFound: ado.IsNotFound}

	_, err := s.GetBug(context.Background(), 9)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBugNotFound)
}

func TestSource_Delegates(t *testing.T) {
	bug := &models.BugRecord{ID: 1, Title: "t"}
	s := &source{inner: &stubSource{bug: bug}, notFound: ado.IsNotFound}

	got, err := s.GetBug(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, bug, got)

	ids, err := s.QueryTaggedBugIDs(context.Background(), "RCA Done")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, ids)
}

func TestNew(t *testing.T) {
	cfg := &config.Config{Tracker: config.TrackerConfig{
		Provider: "ado",
		ADO:      config.ADOConfig{OrgURL: "https://dev.azure.com/contoso", Project: "web", PAT: "pat"},
	}}
	src, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, src)

	cfg.Tracker.Provider = "jira"
	_, err = New(cfg)
	assert.Error(t, err)
}
