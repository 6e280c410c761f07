// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

// CheckIn records a staff member arriving at an event.
type CheckIn struct {
	ID          string   `json:"id"`
	EventID     string   `json:"eventId"`
	UserID      string   `json:"userId"`
	CheckedInAt string   `json:"checkedInAt"`
	User        *UserRef `json:"user,omitempty"`
}

// CreateCheckInInput is the POST .../checkins body.
type CreateCheckInInput struct {
	UserID string `json:"userId"`
}

// ListCheckIns is GET /api/events/:id/checkins.
func (c *Client) ListCheckIns(ctx context.Context, eventID string) ([]CheckIn, error) {
	return getList[CheckIn](ctx, c, c.endpoints.CheckIns(eventID))
}

// CreateCheckIn is POST /api/events/:id/checkins.
func (c *Client) CreateCheckIn(ctx context.Context, eventID string, in CreateCheckInInput) (CheckIn, error) {
	var ci CheckIn
	err := c.getData(ctx, http.MethodPost, c.endpoints.CheckIns(eventID), in, &ci)
	return ci, err
}
