// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

// UserRef is the embedded user summary on assignments and check-ins.
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Assignment puts one user on one event in a named role.
type Assignment struct {
	ID        string   `json:"id"`
	EventID   string   `json:"eventId"`
	UserID    string   `json:"userId"`
	RoleName  string   `json:"roleName"`
	User      *UserRef `json:"user,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// CreateAssignmentInput is the POST .../assignments body.
type CreateAssignmentInput struct {
	UserID   string `json:"userId"`
	RoleName string `json:"roleName"`
}

// ListAssignments is GET /api/events/:id/assignments.
func (c *Client) ListAssignments(ctx context.Context, eventID string) ([]Assignment, error) {
	return getList[Assignment](ctx, c, c.endpoints.Assignments(eventID))
}

// CreateAssignment is POST /api/events/:id/assignments.
func (c *Client) CreateAssignment(ctx context.Context, eventID string, in CreateAssignmentInput) (Assignment, error) {
	var a Assignment
	err := c.getData(ctx, http.MethodPost, c.endpoints.Assignments(eventID), in, &a)
	return a, err
}

// DeleteAssignment is DELETE /api/events/:id/assignments/:assignmentId.
func (c *Client) DeleteAssignment(ctx context.Context, eventID, assignmentID string) error {
	return c.do(ctx, http.MethodDelete, c.endpoints.Assignment(eventID, assignmentID), nil, nil)
}
