package revizto

import (
	"context"

	"github.com/hashicorp-forge/revizto/pkg/entityid"
)

// GetProjectRoles lists the project roles defined in a license.
func (c *Client) GetProjectRoles(ctx context.Context, license entityid.UUID) (Response, error) {
	return c.get(ctx, pathf("/license/%s/role/list", license), nil)
}

// AssignProjectRole gives role to every member in members.
func (c *Client) AssignProjectRole(ctx context.Context, project entityid.UUID, members []entityid.UUID, role entityid.UUID, operationID string) (Response, error) {
	body := struct {
		MemberUUIDs []entityid.UUID `json:"memberUuids"`
		RoleUUID    entityid.UUID   `json:"roleUuid"`
		OperationID string          `json:"operationId,omitempty"`
	}{
		MemberUUIDs: members,
		RoleUUID:    role,
		OperationID: operationID,
	}
	return c.postJSON(ctx, pathf("/project/%s/role/bulk-edit", project), body)
}
