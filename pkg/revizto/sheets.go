package revizto

import (
	"context"

	"github.com/hashicorp-forge/revizto/pkg/entityid"
)

// ===================================================================
// Sheets
// ===================================================================

// GetProjectSheets lists the sheets of a project.
func (c *Client) GetProjectSheets(ctx context.Context, project entityid.UUID) (Response, error) {
	return c.get(ctx, pathf("/project/%s/sheet/list", project), nil)
}

// GetSheetHistory returns a sheet's version history.
func (c *Client) GetSheetHistory(ctx context.Context, project, sheet entityid.UUID) (Response, error) {
	return c.get(ctx, pathf("/project/%s/sheet/%s/history", project, sheet), nil)
}

// GetSheetFilterOptions lists the values available for filtering sheets.
func (c *Client) GetSheetFilterOptions(ctx context.Context, project entityid.UUID) (Response, error) {
	return c.get(ctx, pathf("/project/%s/sheet/field-variants", project), nil)
}
