package revizto

import (
	"context"

	"github.com/hashicorp-forge/revizto/pkg/entityid"
	"github.com/hashicorp-forge/revizto/pkg/revizto/query"
)

type reportListQuery struct {
	Limit int `url:"limit"`
	Page  int `url:"page"`
}

// GetUserReports lists the current user's reports in a license. A limit of
// zero requests 100 reports per page.
func (c *Client) GetUserReports(ctx context.Context, license entityid.UUID, limit, page int) (Response, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	q, err := query.Values(reportListQuery{Limit: limit, Page: page})
	if err != nil {
		return nil, err
	}
	return c.get(ctx, pathf("/license/%s/report/list", license), q)
}
