package revizto

import (
	"context"

	"github.com/hashicorp-forge/revizto/pkg/entityid"
	"github.com/hashicorp-forge/revizto/pkg/revizto/query"
)

// ===================================================================
// Projects
// ===================================================================

// ProjectListOptions filters GetLicenseProjects. Page is always sent.
type ProjectListOptions struct {
	Page          int    `url:"page"`
	Avatars       *bool  `url:"avatars,omitempty"`
	Notifications *bool  `url:"notifications,omitempty"`
	Screenshots   *bool  `url:"screenshots,omitempty"`
	Sorting       string `url:"sorting,omitempty"`
	Type          string `url:"type,omitempty"`
}

// GetLicenseProjects lists the current user's projects in a license, one
// page at a time.
func (c *Client) GetLicenseProjects(ctx context.Context, license entityid.UUID, opts *ProjectListOptions) (Response, error) {
	if opts == nil {
		opts = &ProjectListOptions{}
	}
	q, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, pathf("/project/list/%s/paged", license), q)
}

// GetProjectMembers lists the members of a project.
func (c *Client) GetProjectMembers(ctx context.Context, project entityid.UUID) (Response, error) {
	return c.get(ctx, pathf("/project/%s/team", project), nil)
}

// InviteUsersToProject invites emails to a project with the project role
// roleID.
func (c *Client) InviteUsersToProject(ctx context.Context, project entityid.UUID, emails []string, roleID int, operationID string) (Response, error) {
	body := struct {
		Invitations []string `json:"invitations"`
		RoleID      int      `json:"roleId"`
		OperationID string   `json:"operationId,omitempty"`
	}{
		Invitations: emails,
		RoleID:      roleID,
		OperationID: operationID,
	}
	return c.postJSON(ctx, pathf("/project/%s/role/invite", project), body)
}

// RemoveUsersFromProject removes members from a project. The operationId
// field is sent as null when operationID is empty.
func (c *Client) RemoveUsersFromProject(ctx context.Context, project entityid.UUID, members []entityid.UUID, operationID string) (Response, error) {
	body := struct {
		MemberUUIDs []entityid.UUID `json:"memberUuids"`
		OperationID *string         `json:"operationId"`
	}{
		MemberUUIDs: members,
	}
	if operationID != "" {
		body.OperationID = &operationID
	}
	return c.postJSON(ctx, pathf("/project/%s/role/bulk-delete", project), body)
}
