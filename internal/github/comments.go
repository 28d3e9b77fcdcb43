package github

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// rcaHeading matches a markdown heading such as "## RCA" or "### Root Cause Analysis"
var rcaHeading = regexp.MustCompile(`(?im)^#{1,6}\s*(rca|root cause analysis|root cause)\s*:?\s*$`)

// nextHeading matches any markdown heading of the same or higher level
var nextHeading = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)

const rcaCommentPrefix = "RCA:"

// ListComments fetches every comment on an issue, oldest first
func (c *Client) ListComments(ctx context.Context, number int) ([]Comment, error) {
	var all []Comment
	perPage := 100

	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", c.org, c.repo, number, perPage, page)

		var comments []Comment
		if err := c.get(ctx, endpoint, &comments); err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
		all = append(all, comments...)

		if len(comments) < perPage {
			break
		}
	}

	return all, nil
}

// SplitRCA separates an issue body into the repro text and the RCA section.
// The RCA section runs from its heading to the next heading or the end.
func SplitRCA(body string) (repro, rca string) {
	loc := rcaHeading.FindStringIndex(body)
	if loc == nil {
		return strings.TrimSpace(body), ""
	}

	rest := body[loc[1]:]
	end := len(rest)
	if next := nextHeading.FindStringIndex(rest); next != nil {
		end = next[0]
	}

	rca = strings.TrimSpace(rest[:end])
	repro = strings.TrimSpace(body[:loc[0]] + rest[end:])
	return repro, rca
}

// LastRCAComment returns the text of the newest comment starting with "RCA:"
func LastRCAComment(comments []Comment) string {
	for i := len(comments) - 1; i >= 0; i-- {
		body := strings.TrimSpace(comments[i].Body)
		if strings.HasPrefix(strings.ToUpper(body), rcaCommentPrefix) {
			return strings.TrimSpace(body[len(rcaCommentPrefix):])
		}
	}
	return ""
}
