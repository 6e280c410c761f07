// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest holds the REST endpoint table of the EventsOps backend and
// resolves the base address every request is sent to.
package manifest

import (
	"net/url"
	"strings"
)

// Endpoints contains REST API endpoint paths. Per-resource paths are built
// with the helper methods so ids are always path-escaped.
type Endpoints struct {
	Register string `json:"auth_register"` // POST {name, email, password}
	Login    string `json:"auth_login"`    // POST {email, password}
	Me       string `json:"auth_me"`       // GET, bearer required
	Events   string `json:"events"`        // GET list, POST create
	Users    string `json:"users"`         // GET list
}

// DefaultEndpoints returns the paths served by the EventsOps API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Register: "/api/auth/register",
		Login:    "/api/auth/login",
		Me:       "/api/auth/me",
		Events:   "/api/events",
		Users:    "/api/users",
	}
}

// EventStats is GET /api/events/stats.
func (e Endpoints) EventStats() string { return e.Events + "/stats" }

// Event is /api/events/:id.
func (e Endpoints) Event(id string) string {
	return e.Events + "/" + url.PathEscape(id)
}

// PublishEvent is PATCH /api/events/:id/publish.
func (e Endpoints) PublishEvent(id string) string { return e.Event(id) + "/publish" }

// ArchiveEvent is PATCH /api/events/:id/archive.
func (e Endpoints) ArchiveEvent(id string) string { return e.Event(id) + "/archive" }

// EventMetrics is GET /api/events/:id/metrics.
func (e Endpoints) EventMetrics(id string) string { return e.Event(id) + "/metrics" }

// Assignments is /api/events/:id/assignments.
func (e Endpoints) Assignments(eventID string) string { return e.Event(eventID) + "/assignments" }

// Assignment is /api/events/:id/assignments/:assignmentId.
func (e Endpoints) Assignment(eventID, assignmentID string) string {
	return e.Assignments(eventID) + "/" + url.PathEscape(assignmentID)
}

// CheckIns is /api/events/:id/checkins.
func (e Endpoints) CheckIns(eventID string) string { return e.Event(eventID) + "/checkins" }

// trimBase normalizes a base URL for concatenation with endpoint paths.
func trimBase(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
