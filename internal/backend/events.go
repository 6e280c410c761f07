// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strings"
)

// EventStatus is the lifecycle state of an event, always lower case.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
	StatusArchived  EventStatus = "archived"
)

// Event is the client-side view of an event. Dates are kept as the backend
// sent them (ISO 8601) and formatted for display by the dashboard.
type Event struct {
	ID          string
	Title       string
	Description string
	StartDate   string
	EndDate     string
	Status      EventStatus
	Location    string
	Capacity    *int
	CreatedAt   string
	UpdatedAt   string
}

// wireEvent accepts both the backend naming (startAt/endAt/venue, upper case
// status) and the older startDate/endDate/location naming.
type wireEvent struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartAt     string  `json:"startAt"`
	StartDate   string  `json:"startDate"`
	EndAt       string  `json:"endAt"`
	EndDate     string  `json:"endDate"`
	Status      string  `json:"status"`
	Venue       *string `json:"venue"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func (w wireEvent) event() Event {
	status := EventStatus(strings.ToLower(strings.TrimSpace(w.Status)))
	if status == "" {
		status = StatusDraft
	}
	return Event{
		ID:          w.ID,
		Title:       w.Title,
		Description: deref(w.Description),
		StartDate:   firstNonEmpty(w.StartAt, w.StartDate),
		EndDate:     firstNonEmpty(w.EndAt, w.EndDate),
		Status:      status,
		Location:    firstNonEmpty(deref(w.Venue), deref(w.Location)),
		Capacity:    w.Capacity,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// EventStats are the dashboard counters.
type EventStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Upcoming  int `json:"upcoming"`
}

// EventMetrics summarize staffing of one event.
type EventMetrics struct {
	TotalAssignments  int            `json:"totalAssignments"`
	TotalCheckIns     int            `json:"totalCheckIns"`
	AssignmentsByRole map[string]int `json:"assignmentsByRole"`
	CheckInsToday     int            `json:"checkInsToday"`
}

// CreateEventInput is the POST /api/events body. Times are ISO 8601 strings;
// nil description/venue are sent as JSON null.
type CreateEventInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Venue       *string `json:"venue"`
	StartAt     string  `json:"startAt"`
	EndAt       string  `json:"endAt"`
	Capacity    int     `json:"capacity"`
}

// ListEvents is GET /api/events.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	wires, err := getList[wireEvent](ctx, c, c.endpoints.Events)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(wires))
	for _, w := range wires {
		events = append(events, w.event())
	}
	return events, nil
}

// GetEvent is GET /api/events/:id.
func (c *Client) GetEvent(ctx context.Context, id string) (Event, error) {
	return c.eventCall(ctx, http.MethodGet, c.endpoints.Event(id), nil)
}

// CreateEvent is POST /api/events.
func (c *Client) CreateEvent(ctx context.Context, in CreateEventInput) (Event, error) {
	return c.eventCall(ctx, http.MethodPost, c.endpoints.Events, in)
}

// PublishEvent is PATCH /api/events/:id/publish.
func (c *Client) PublishEvent(ctx context.Context, id string) (Event, error) {
	return c.eventCall(ctx, http.MethodPatch, c.endpoints.PublishEvent(id), nil)
}

// ArchiveEvent is PATCH /api/events/:id/archive.
func (c *Client) ArchiveEvent(ctx context.Context, id string) (Event, error) {
	return c.eventCall(ctx, http.MethodPatch, c.endpoints.ArchiveEvent(id), nil)
}

func (c *Client) eventCall(ctx context.Context, method, path string, in any) (Event, error) {
	var w wireEvent
	if err := c.getData(ctx, method, path, in, &w); err != nil {
		return Event{}, err
	}
	return w.event(), nil
}

// EventStats is GET /api/events/stats.
func (c *Client) EventStats(ctx context.Context) (EventStats, error) {
	var s EventStats
	err := c.getData(ctx, http.MethodGet, c.endpoints.EventStats(), nil, &s)
	return s, err
}

// EventMetrics is GET /api/events/:id/metrics. A missing role breakdown
// decodes to an empty map.
func (c *Client) EventMetrics(ctx context.Context, id string) (EventMetrics, error) {
	var m EventMetrics
	if err := c.getData(ctx, http.MethodGet, c.endpoints.EventMetrics(id), nil, &m); err != nil {
		return EventMetrics{}, err
	}
	if m.AssignmentsByRole == nil {
		m.AssignmentsByRole = map[string]int{}
	}
	return m, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
