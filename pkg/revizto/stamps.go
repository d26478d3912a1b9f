package revizto

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hashicorp-forge/revizto/pkg/entityid"
)

// GetStampTemplates lists the stamp templates and template categories
// available in a project.
func (c *Client) GetStampTemplates(ctx context.Context, project entityid.UUID, page int) (Response, error) {
	q := url.Values{"page": {strconv.Itoa(page)}}
	return c.get(ctx, pathf("/project/%s/issue-preset/list", project), q)
}
