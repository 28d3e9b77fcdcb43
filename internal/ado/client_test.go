package ado

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kavirubc/rca-assist/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.ADOConfig{
		OrgURL:   srv.URL + "/contoso/",
		Project:  "web",
		PAT:      "secret",
		RCAField: "Custom.RCADetail",
	}, 100)
	require.NoError(t, err)
	return c
}

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

func TestGetBug_ServerWithPort(t *testing.T) {
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte(":onprem"))

	mux := http.NewServeMux()
	mux.HandleFunc("/tfs/DefaultCollection/web/_apis/wit/workitems/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":7,"fields":{"System.Title":"Build agent offline"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	c, err := newClient(&config.ADOConfig{
		OrgURL:  "https://tfs.corp:8080/tfs/DefaultCollection",
		Project: "web",
		PAT:     "onprem",
	}, 100, rewriteTransport{target: target})
	require.NoError(t, err)

	bug, err := c.GetBug(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Build agent offline", bug.Title)
}

func TestGetBug(t *testing.T) {
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte(":secret"))

	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/web/_apis/wit/workitems/101", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		assert.Equal(t, "7.0", r.URL.Query().Get("api-version"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 101,
			"fields": map[string]any{
				"System.Title":                  "Checkout crashes",
				"Microsoft.VSTS.TCM.ReproSteps": "Add item, pay",
				"Custom.RCADetail":              "Null currency code",
			},
		})
	})

	c := newTestClient(t, mux)
	bug, err := c.GetBug(context.Background(), 101)
	require.NoError(t, err)

	assert.Equal(t, 101, bug.ID)
	assert.Equal(t, "Checkout crashes", bug.Title)
	assert.Equal(t, "Add item, pay", bug.ReproSteps)
	assert.Equal(t, "Null currency code", bug.RCADetail)
}

func TestGetBug_MissingFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/web/_apis/wit/workitems/5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":5,"fields":{"System.Title":"Only a title"}}`))
	})

	bug, err := newTestClient(t, mux).GetBug(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Only a title", bug.Title)
	assert.Empty(t, bug.ReproSteps)
	assert.Empty(t, bug.RCADetail)
}

func TestGetBug_NonSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/web/_apis/wit/workitems/404", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"TF401232: Work item 404 does not exist"}`))
	})

	_, err := newTestClient(t, mux).GetBug(context.Background(), 404)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 404, fe.BugID)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Contains(t, err.Error(), "TF401232")
	assert.True(t, IsNotFound(err))
}

func TestQueryTaggedBugIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/web/_apis/wit/wiql", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req wiqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "[System.Tags] CONTAINS 'RCA Done'")
		assert.Contains(t, req.Query, "ORDER BY [System.CreatedDate] DESC")

		_, _ = w.Write([]byte(`{"workItems":[{"id":102,"url":"x"},{"id":101,"url":"y"}]}`))
	})

	ids, err := newTestClient(t, mux).QueryTaggedBugIDs(context.Background(), "RCA Done")
	require.NoError(t, err)
	assert.Equal(t, []int{102, 101}, ids)
}

func TestQueryTaggedBugIDs_Error(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/web/_apis/wit/wiql", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
	})

	_, err := newTestClient(t, mux).QueryTaggedBugIDs(context.Background(), "RCA Done")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestTaggedBugsQuery_EscapesQuotes(t *testing.T) {
	q := taggedBugsQuery("O'Brien")
	assert.Contains(t, q, "CONTAINS 'O''Brien'")
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(&config.ADOConfig{OrgURL: "not a url", Project: "p", PAT: "x"}, 1)
	assert.Error(t, err)
}
