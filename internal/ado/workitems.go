package ado

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Kavirubc/rca-assist/pkg/models"
)

// GetBug fetches a single bug work item
func (c *Client) GetBug(ctx context.Context, id int) (*models.BugRecord, error) {
	endpoint := fmt.Sprintf("%s/wit/workitems/%d?api-version=%s", c.baseURL, id, apiVersion)

	var wi workItem
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &wi); err != nil {
		return nil, asFetchError(err, id)
	}

	return &models.BugRecord{
		ID:         id,
		Title:      stringField(wi.Fields, FieldTitle),
		ReproSteps: stringField(wi.Fields, FieldReproSteps),
		RCADetail:  stringField(wi.Fields, c.rcaField),
	}, nil
}

// QueryTaggedBugIDs returns the ids of bugs carrying tag, newest first
func (c *Client) QueryTaggedBugIDs(ctx context.Context, tag string) ([]int, error) {
	endpoint := fmt.Sprintf("%s/wit/wiql?api-version=%s", c.baseURL, apiVersion)

	var resp wiqlResponse
	if err := c.do(ctx, http.MethodPost, endpoint, wiqlRequest{Query: taggedBugsQuery(tag)}, &resp); err != nil {
		return nil, fmt.Errorf("failed to query tagged bugs: %w", asFetchError(err, 0))
	}

	ids := make([]int, 0, len(resp.WorkItems))
	for _, wi := range resp.WorkItems {
		ids = append(ids, wi.ID)
	}
	return ids, nil
}

// taggedBugsQuery builds the WIQL selecting bugs with the given tag
func taggedBugsQuery(tag string) string {
	escaped := strings.ReplaceAll(tag, "'", "''")
	return "SELECT [System.Id] FROM WorkItems " +
		"WHERE [System.WorkItemType] = 'Bug' " +
		"AND [System.Tags] CONTAINS '" + escaped + "' " +
		"ORDER BY [System.CreatedDate] DESC"
}

func stringField(fields map[string]any, name string) string {
	if v, ok := fields[name]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}
