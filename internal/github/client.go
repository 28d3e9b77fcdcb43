package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"golang.org/x/time/rate"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// Client wraps GitHub API operations for a single repository
type Client struct {
	rest    *api.RESTClient
	org     string
	repo    string
	limiter *rate.Limiter
}

// NewClient creates a new GitHub client using the gh CLI credentials
func NewClient(fullRepo string, rps int) (*Client, error) {
	rest, err := api.DefaultRESTClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}
	return newClient(rest, fullRepo, rps)
}

func newClient(rest *api.RESTClient, fullRepo string, rps int) (*Client, error) {
	org, repo, err := ParseRepo(fullRepo)
	if err != nil {
		return nil, err
	}
	if rps <= 0 {
		rps = 10
	}

	return &Client{
		rest:    rest,
		org:     org,
		repo:    repo,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ParseRepo splits "owner/repo" into owner and repo
func ParseRepo(fullRepo string) (string, string, error) {
	parts := strings.Split(fullRepo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format: %s (expected owner/repo)", fullRepo)
	}
	return parts[0], parts[1], nil
}

// Issue represents a GitHub issue from the API
type Issue struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	State       string    `json:"state"`
	Labels      []Label   `json:"labels"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Label represents a GitHub label
type Label struct {
	Name string `json:"name"`
}

// Comment represents a GitHub comment
type Comment struct {
	ID        int       `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// isPullRequest reports whether the issues endpoint returned a pull request
func (i *Issue) isPullRequest() bool {
	return i.PullRequest != nil
}

// ToModel converts the issue into a bug record using the RCA found in the
// body or, failing that, in rcaComment
func (i *Issue) ToModel(rcaComment string) *models.BugRecord {
	repro, rca := SplitRCA(i.Body)
	if rca == "" {
		rca = rcaComment
	}
	return &models.BugRecord{
		ID:         i.Number,
		Title:      i.Title,
		ReproSteps: repro,
		RCADetail:  rca,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, out)
}
