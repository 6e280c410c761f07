// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "context"

// ListUsers is GET /api/users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return getList[User](ctx, c, c.endpoints.Users)
}
