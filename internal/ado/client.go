// Package ado reads bugs from Azure DevOps Boards.
package ado

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
	"golang.org/x/time/rate"

	"github.com/Kavirubc/rca-assist/internal/config"
)

const apiVersion = "7.0"

// Work item field reference names
const (
	FieldTitle      = "System.Title"
	FieldReproSteps = "Microsoft.VSTS.TCM.ReproSteps"
)

// Client wraps the Azure DevOps work item REST API. Requests use absolute
// URLs, so go-gh never rewrites them to a GitHub host.
type Client struct {
	rest     *api.RESTClient
	baseURL  string
	rcaField string
	limiter  *rate.Limiter
}

// NewClient creates a new Azure DevOps client
func NewClient(cfg *config.ADOConfig, rps int) (*Client, error) {
	return newClient(cfg, rps, nil)
}

func newClient(cfg *config.ADOConfig, rps int, transport http.RoundTripper) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.OrgURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid Azure DevOps org URL: %s", cfg.OrgURL)
	}

	// go-gh compares Host against the request hostname, which carries no port
	auth := base64.StdEncoding.EncodeToString([]byte(":" + cfg.PAT))
	rest, err := api.NewRESTClient(api.ClientOptions{
		Host:               base.Hostname(),
		AuthToken:          cfg.PAT,
		SkipDefaultHeaders: true,
		Transport:          transport,
		Headers: map[string]string{
			"Authorization": "Basic " + auth,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	if rps <= 0 {
		rps = 10
	}

	return &Client{
		rest:     rest,
		baseURL:  fmt.Sprintf("%s/%s/_apis", base.String(), url.PathEscape(cfg.Project)),
		rcaField: cfg.RCAField,
		limiter:  rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// FetchError is returned when Azure DevOps answers with a non-success status
type FetchError struct {
	BugID      int
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	if e.BugID != 0 {
		return fmt.Sprintf("error fetching bug ID %d: status %d: %s", e.BugID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("azure devops request failed: status %d: %s", e.StatusCode, e.Message)
}

// workItem is the subset of the work item response we read
type workItem struct {
	ID     int            `json:"id"`
	Fields map[string]any `json:"fields"`
}

type wiqlRequest struct {
	Query string `json:"query"`
}

type wiqlResponse struct {
	WorkItems []struct {
		ID int `json:"id"`
	} `json:"workItems"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	return c.rest.DoWithContext(ctx, method, endpoint, reader, out)
}

// asFetchError converts go-gh HTTP errors into FetchError
func asFetchError(err error, bugID int) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return &FetchError{BugID: bugID, StatusCode: httpErr.StatusCode, Message: httpErr.Message}
	}
	return err
}

// IsNotFound reports whether err is a 404 from Azure DevOps
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound
}
