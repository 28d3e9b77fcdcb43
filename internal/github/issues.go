package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cli/go-gh/v2/pkg/api"
)

// ErrNotFound is returned when the issue does not exist
var ErrNotFound = errors.New("issue not found")

// GetIssue fetches a single issue
func (c *Client) GetIssue(ctx context.Context, number int) (*Issue, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d", c.org, c.repo, number)

	var issue Issue
	if err := c.get(ctx, endpoint, &issue); err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("issue #%d: %w", number, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}

	return &issue, nil
}

// ListIssuesByLabel fetches open and closed issues with a label, newest first
func (c *Client) ListIssuesByLabel(ctx context.Context, label string) ([]*Issue, error) {
	var all []*Issue
	page := 1
	perPage := 100

	for {
		params := url.Values{}
		params.Set("labels", label)
		params.Set("state", "all")
		params.Set("per_page", strconv.Itoa(perPage))
		params.Set("page", strconv.Itoa(page))
		params.Set("sort", "created")
		params.Set("direction", "desc")

		endpoint := fmt.Sprintf("repos/%s/%s/issues?%s", c.org, c.repo, params.Encode())

		var apiIssues []*Issue
		if err := c.get(ctx, endpoint, &apiIssues); err != nil {
			return nil, fmt.Errorf("failed to list issues by label: %w", err)
		}

		if len(apiIssues) == 0 {
			break
		}

		for _, ai := range apiIssues {
			if ai.isPullRequest() {
				continue
			}
			all = append(all, ai)
		}

		if len(apiIssues) < perPage {
			break
		}
		page++
	}

	return all, nil
}
