package revizto

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp-forge/revizto/pkg/entityid"
	"github.com/hashicorp-forge/revizto/pkg/revizto/query"
)

// ===================================================================
// Issues
// ===================================================================

const defaultPageLimit = 100

// IssueListOptions filters GetProjectIssues. Filters and Sort are sent in
// bracket notation (alwaysFiltersDTO[0][type]=...).
type IssueListOptions struct {
	Page int `url:"page"`
	// Limit is the page size. Zero means 100.
	Limit int `url:"limit"`

	Filters          []map[string]any `url:"-"`
	Sort             []map[string]any `url:"-"`
	AdditionalFields []string         `url:"-"`
}

// DeletedIssuesOptions filters GetDeletedIssues.
type DeletedIssuesOptions struct {
	Page int `url:"page"`
	// Limit is the page size. Zero means 100.
	Limit int `url:"limit"`
	// SendFullIssueData returns every issue field instead of changed ones.
	SendFullIssueData bool     `url:"sendFullIssueData"`
	AdditionalFields  []string `url:"additionalFields,brackets,omitempty"`
	Statuses          []string `url:"statuses,brackets,omitempty"`
	// Synchronized restricts results to issues changed after this time.
	Synchronized time.Time `url:"synchronized,omitempty"`

	AlwaysFilters []map[string]any `url:"-"`
	AnyFilters    []map[string]any `url:"-"`
	Sort          []map[string]any `url:"-"`
}

// CreateIssueOptions are the optional fields of CreateIssue.
type CreateIssueOptions struct {
	// UUID identifies the new issue. A random UUID is used when zero.
	UUID          entityid.UUID
	OperationID   string
	ClashTestUUID string
}

// GetProjectIssues lists a page of project issues.
func (c *Client) GetProjectIssues(ctx context.Context, project entityid.UUID, opts *IssueListOptions) (Response, error) {
	o := IssueListOptions{}
	if opts != nil {
		o = *opts
	}
	if o.Limit <= 0 {
		o.Limit = defaultPageLimit
	}

	q, err := query.Values(o)
	if err != nil {
		return nil, err
	}
	query.Nested("alwaysFiltersDTO", o.Filters, q)
	query.Nested("reportSort", o.Sort, q)
	query.Nested("additionalFields", o.AdditionalFields, q)

	return c.get(ctx, pathf("/project/%s/issue-filter/filter", project), q)
}

// GetDeletedIssues lists a page of issues deleted from a project.
func (c *Client) GetDeletedIssues(ctx context.Context, project entityid.UUID, opts *DeletedIssuesOptions) (Response, error) {
	o := DeletedIssuesOptions{}
	if opts != nil {
		o = *opts
	}
	if o.Limit <= 0 {
		o.Limit = defaultPageLimit
	}

	q, err := query.Values(o)
	if err != nil {
		return nil, err
	}
	query.Nested("alwaysFiltersDTO", o.AlwaysFilters, q)
	query.Nested("anyFiltersDTO", o.AnyFilters, q)
	query.Nested("reportSort", o.Sort, q)

	return c.get(ctx, pathf("/project/%s/issue-filter/filter_deleted", project), q)
}

// CreateIssue creates an issue in the project with numeric id projectID.
// fields is sent as a JSON part and preview as the issue's markup image.
func (c *Client) CreateIssue(ctx context.Context, projectID int, preview File, fields map[string]any, opts *CreateIssueOptions) (Response, error) {
	if opts == nil {
		opts = &CreateIssueOptions{}
	}
	issueUUID := opts.UUID
	if issueUUID.IsZero() {
		issueUUID = entityid.NewUUID()
	}

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal issue fields: %w", err)
	}

	form := map[string][]string{
		"uuid":      {issueUUID.String()},
		"projectId": {strconv.Itoa(projectID)},
	}
	if opts.OperationID != "" {
		form["operationId"] = []string{opts.OperationID}
	}
	if opts.ClashTestUUID != "" {
		form["clashTestUuid"] = []string{opts.ClashTestUUID}
	}

	parts := []formPart{
		{name: "fields", contentType: "application/json", data: fieldsJSON},
		{name: "preview", filename: preview.Name, contentType: preview.contentType(), data: preview.Data},
	}
	return c.postMultipart(ctx, "/issue/add", form, parts)
}
