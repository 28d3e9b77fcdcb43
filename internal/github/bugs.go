package github

import (
	"context"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// GetBug fetches an issue and reads it as a bug record. Comments are only
// consulted when the body carries no RCA section.
func (c *Client) GetBug(ctx context.Context, id int) (*models.BugRecord, error) {
	issue, err := c.GetIssue(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, rca := SplitRCA(issue.Body); rca != "" {
		return issue.ToModel(""), nil
	}

	comments, err := c.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	return issue.ToModel(LastRCAComment(comments)), nil
}

// QueryTaggedBugIDs returns the numbers of issues carrying the label
func (c *Client) QueryTaggedBugIDs(ctx context.Context, label string) ([]int, error) {
	issues, err := c.ListIssuesByLabel(ctx, label)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.Number)
	}
	return ids, nil
}
