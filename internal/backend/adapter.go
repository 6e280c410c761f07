// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the single point through which every EventsOps API call
// flows. The Client resolves endpoint paths against one base address, attaches
// the bearer token from its TokenSource, and turns 401 responses into a
// credential wipe plus an UnauthorizedEvent for the hosting shell. It never
// retries and never navigates.
package backend

import "context"

// AuthAPI is the subset used by the session manager.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	// Me returns the profile behind the current bearer token.
	Me(ctx context.Context) (User, error)
}

// EventsAPI covers event CRUD, stats and metrics.
type EventsAPI interface {
	ListEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	CreateEvent(ctx context.Context, in CreateEventInput) (Event, error)
	PublishEvent(ctx context.Context, id string) (Event, error)
	ArchiveEvent(ctx context.Context, id string) (Event, error)
	EventStats(ctx context.Context) (EventStats, error)
	EventMetrics(ctx context.Context, id string) (EventMetrics, error)
}

// AssignmentsAPI covers staff assignments of one event.
type AssignmentsAPI interface {
	ListAssignments(ctx context.Context, eventID string) ([]Assignment, error)
	CreateAssignment(ctx context.Context, eventID string, in CreateAssignmentInput) (Assignment, error)
	DeleteAssignment(ctx context.Context, eventID, assignmentID string) error
}

// CheckInsAPI covers check-ins of one event.
type CheckInsAPI interface {
	ListCheckIns(ctx context.Context, eventID string) ([]CheckIn, error)
	CreateCheckIn(ctx context.Context, eventID string, in CreateCheckInInput) (CheckIn, error)
}

// UsersAPI lists staff accounts.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// API defines every backend operation the CLI depends on.
// *Client implements it; tests may provide fakes.
type API interface {
	AuthAPI
	EventsAPI
	AssignmentsAPI
	CheckInsAPI
	UsersAPI
}

var _ API = (*Client)(nil)
