package revizto

import "context"

// GetCurrentUser returns the profile of the user the tokens belong to.
func (c *Client) GetCurrentUser(ctx context.Context) (Response, error) {
	return c.get(ctx, "/user", nil)
}
