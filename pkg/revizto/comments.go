package revizto

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp-forge/revizto/pkg/entityid"
	"github.com/hashicorp-forge/revizto/pkg/revizto/query"
)

// ===================================================================
// Comments
// ===================================================================

// CommentType selects which Comment fields are sent.
type CommentType string

const (
	CommentText   CommentType = "text"
	CommentFile   CommentType = "file"
	CommentMarkup CommentType = "markup"
	CommentDiff   CommentType = "diff"
)

const (
	commentDateLayout    = "2006-01-02"
	commentCreatedLayout = "2006-01-02 15:04:05"
)

// Comment is a single comment posted with AddComment.
type Comment struct {
	Type CommentType
	// Reporter is the email of the comment's author.
	Reporter string

	// Text is the body of a text comment.
	Text string
	// File is the attachment of a file or markup comment.
	File *File
	// Diff describes the change recorded by a diff comment, for example
	// {"title": {"old": ..., "new": ...}}.
	Diff map[string]any

	// UUID and Created default to a random UUID and the current time.
	UUID    entityid.UUID
	Created time.Time
}

// GetIssueComments lists comments on an issue added on date or later.
// projectID is the project's numeric id.
func (c *Client) GetIssueComments(ctx context.Context, projectID int, issue entityid.UUID, date time.Time, page int) (Response, error) {
	q := url.Values{
		"projectId": {strconv.Itoa(projectID)},
		"date":      {date.Format(commentDateLayout)},
		"page":      {strconv.Itoa(page)},
	}
	return c.get(ctx, pathf("/issue/%s/comments/date", issue), q)
}

// AddComment posts one comment on an issue.
func (c *Client) AddComment(ctx context.Context, project, issue entityid.UUID, comment Comment) (Response, error) {
	id := comment.UUID
	if id.IsZero() {
		id = entityid.NewUUID()
	}
	created := comment.Created
	if created.IsZero() {
		created = c.now()
	}

	record := map[string]any{
		"type":       string(comment.Type),
		"uuid":       id.String(),
		"reporter":   comment.Reporter,
		"created":    created.Format(commentCreatedLayout),
		"rClashSync": false,
	}
	var parts []formPart
	switch comment.Type {
	case CommentText:
		record["text"] = comment.Text
	case CommentFile, CommentMarkup:
		if comment.File != nil {
			parts = append(parts, formPart{
				name:        "file_" + id.String(),
				filename:    comment.File.Name,
				contentType: comment.File.contentType(),
				data:        comment.File.Data,
			})
		}
	case CommentDiff:
		record["diff"] = comment.Diff
	}

	form := url.Values{
		"projectUuid": {project.String()},
		"issueUuid":   {issue.String()},
	}
	query.Nested("comments", []map[string]any{record}, form)

	return c.postMultipart(ctx, "/comment/add", form, parts)
}
