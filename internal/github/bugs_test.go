package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every request to the test server
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	rest, err := api.NewRESTClient(api.ClientOptions{
		Host:      "github.com",
		AuthToken: "test-token",
		Transport: rewriteTransport{target: target},
	})
	require.NoError(t, err)

	c, err := newClient(rest, "acme/api", 100)
	require.NoError(t, err)
	return c
}

func TestParseRepo(t *testing.T) {
	org, repo, err := ParseRepo("acme/api")
	require.NoError(t, err)
	assert.Equal(t, "acme", org)
	assert.Equal(t, "api", repo)

	for _, bad := range []string{"acme", "acme/", "/api", "a/b/c"} {
		_, _, err := ParseRepo(bad)
		assert.Error(t, err, bad)
	}
}

func TestSplitRCA(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		repro string
		rca   string
	}{
		{
			name:  "no section",
			body:  "Clicking save crashes.",
			repro: "Clicking save crashes.",
			rca:   "",
		},
		{
			name:  "section at end",
			body:  "Clicking save crashes.\n\n## RCA\nNull pointer in form handler.",
			repro: "Clicking save crashes.",
			rca:   "Null pointer in form handler.",
		},
		{
			name:  "section followed by another heading",
			body:  "Steps here\n### Root Cause Analysis:\nCache was stale.\n### Fix\nFlush on write.",
			repro: "Steps here\n### Fix\nFlush on write.",
			rca:   "Cache was stale.",
		},
		{
			name:  "heading is case insensitive",
			body:  "# rca\nDNS timeout",
			repro: "",
			rca:   "DNS timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repro, rca := SplitRCA(tt.body)
			assert.Equal(t, tt.repro, repro)
			assert.Equal(t, tt.rca, rca)
		})
	}
}

func TestLastRCAComment(t *testing.T) {
	comments := []Comment{
		{Body: "RCA: first guess"},
		{Body: "looking into it"},
		{Body: "rca: connection pool exhausted"},
		{Body: "thanks!"},
	}
	assert.Equal(t, "connection pool exhausted", LastRCAComment(comments))
	assert.Empty(t, LastRCAComment([]Comment{{Body: "nothing here"}}))
	assert.Empty(t, LastRCAComment(nil))
}

func TestGetBug_FromBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/issues/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(Issue{
			Number: 7,
			Title:  "Login fails",
			Body:   "Enter password twice.\n## RCA\nSession cookie overwritten.",
		})
	})
	mux.HandleFunc("/repos/acme/api/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		t.Error("comments must not be fetched when the body has an RCA section")
	})

	c := newTestClient(t, mux)
	bug, err := c.GetBug(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, bug.ID)
	assert.Equal(t, "Login fails", bug.Title)
	assert.Equal(t, "Enter password twice.", bug.ReproSteps)
	assert.Equal(t, "Session cookie overwritten.", bug.RCADetail)
}

func TestGetBug_FromComment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/issues/8", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Issue{Number: 8, Title: "Timeouts", Body: "API times out under load"})
	})
	mux.HandleFunc("/repos/acme/api/issues/8/comments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Comment{{Body: "RCA: pool size too small"}})
	})

	c := newTestClient(t, mux)
	bug, err := c.GetBug(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "API times out under load", bug.ReproSteps)
	assert.Equal(t, "pool size too small", bug.RCADetail)
}

func TestGetBug_RCACommentOnLaterPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/issues/9", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Issue{Number: 9, Title: "Flaky deploys", Body: "Deploy fails randomly"})
	})
	mux.HandleFunc("/repos/acme/api/issues/9/comments", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			comments := make([]Comment, 100)
			comments[0] = Comment{Body: "RCA: stale guess"}
			for i := 1; i < len(comments); i++ {
				comments[i] = Comment{Body: "+1"}
			}
			_ = json.NewEncoder(w).Encode(comments)
		case "2":
			_ = json.NewEncoder(w).Encode([]Comment{{Body: "RCA: race in artifact upload"}})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	c := newTestClient(t, mux)
	comments, err := c.ListComments(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, comments, 101)

	bug, err := c.GetBug(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "race in artifact upload", bug.RCADetail)
}

func TestGetBug_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/issues/404", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	c := newTestClient(t, mux)
	_, err := c.GetBug(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryTaggedBugIDs_SkipsPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/api/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "RCA Done", r.URL.Query().Get("labels"))
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		_ = json.NewEncoder(w).Encode([]Issue{
			{Number: 12},
			{Number: 11, PullRequest: &struct{}{}},
			{Number: 10},
		})
	})

	c := newTestClient(t, mux)
	ids, err := c.QueryTaggedBugIDs(context.Background(), "RCA Done")
	require.NoError(t, err)
	assert.Equal(t, []int{12, 10}, ids)
}
