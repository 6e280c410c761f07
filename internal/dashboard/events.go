// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dashboard

import (
	"context"

	"eventsops/cli/internal/backend"
	"eventsops/cli/internal/forms"
	"eventsops/cli/internal/query"
)

// Events backs the overview, events list and event detail screens.
type Events struct {
	api   backend.EventsAPI
	cache *query.Cache
}

// NewEvents returns the events screens over api.
func NewEvents(api backend.EventsAPI, cache *query.Cache) *Events {
	return &Events{api: api, cache: cache}
}

// List returns all events.
func (e *Events) List(ctx context.Context) ([]backend.Event, error) {
	return query.Fetch(ctx, e.cache, eventsKey(), e.api.ListEvents)
}

// Get returns one event.
func (e *Events) Get(ctx context.Context, id string) (backend.Event, error) {
	return query.Fetch(ctx, e.cache, eventKey(id), func(ctx context.Context) (backend.Event, error) {
		return e.api.GetEvent(ctx, id)
	})
}

// Stats returns the overview counters.
func (e *Events) Stats(ctx context.Context) (backend.EventStats, error) {
	return query.Fetch(ctx, e.cache, eventStatsKey(), e.api.EventStats)
}

// Metrics returns staffing metrics of one event.
func (e *Events) Metrics(ctx context.Context, id string) (backend.EventMetrics, error) {
	return query.Fetch(ctx, e.cache, eventMetricsKey(id), func(ctx context.Context) (backend.EventMetrics, error) {
		return e.api.EventMetrics(ctx, id)
	})
}

// Create validates in and creates the event. Invalid input never reaches the
// backend.
func (e *Events) Create(ctx context.Context, in forms.EventInput) (backend.Event, Notice, error) {
	form, err := in.Validate()
	if err != nil {
		return backend.Event{}, Failure(err, ""), err
	}
	ev, err := e.api.CreateEvent(ctx, form.Payload())
	if err != nil {
		return backend.Event{}, Failure(err, "Failed to create event. Please try again."), err
	}
	e.cache.Invalidate(eventsKey())
	return ev, Success("Event created successfully"), nil
}

// Publish moves a draft event to published.
func (e *Events) Publish(ctx context.Context, id string) (backend.Event, Notice, error) {
	ev, err := e.api.PublishEvent(ctx, id)
	if err != nil {
		return backend.Event{}, Failure(err, "Failed to publish event"), err
	}
	e.invalidateEvent(id)
	return ev, Success("Event published successfully"), nil
}

// Archive archives an event.
func (e *Events) Archive(ctx context.Context, id string) (backend.Event, Notice, error) {
	ev, err := e.api.ArchiveEvent(ctx, id)
	if err != nil {
		return backend.Event{}, Failure(err, "Failed to archive event"), err
	}
	e.invalidateEvent(id)
	return ev, Success("Event archived successfully"), nil
}

func (e *Events) invalidateEvent(id string) {
	e.cache.Invalidate(eventsKey())
	e.cache.Invalidate(eventKey(id))
}
