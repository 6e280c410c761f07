// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package dashboard holds the screens of the EventsOps client as services.
// Reads go through the query cache; mutations wait for the backend, then
// invalidate the reads they affect. Every mutation reports a Notice for the
// shell to show.
package dashboard

import (
	stderrors "errors"

	"eventsops/cli/internal/backend"
	"eventsops/cli/internal/forms"
	"eventsops/cli/internal/query"
)

// Level is the severity of a Notice.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is a transient message about the outcome of a mutation.
type Notice struct {
	Level Level
	Text  string
}

// Success builds a success notice.
func Success(text string) Notice { return Notice{Level: LevelSuccess, Text: text} }

// Failure builds an error notice from err. Form errors are shown as is, backend
// errors by their message, anything else by fallback.
func Failure(err error, fallback string) Notice {
	var ferrs forms.Errors
	if stderrors.As(err, &ferrs) {
		return Notice{Level: LevelError, Text: ferrs.Error()}
	}
	return Notice{Level: LevelError, Text: backend.MessageOf(err, fallback)}
}

// Cache keys shared by the screens.
func eventsKey() query.Key                { return query.Key{"events"} }
func eventStatsKey() query.Key            { return query.Key{"events", "stats"} }
func eventKey(id string) query.Key        { return query.Key{"event", id} }
func eventMetricsKey(id string) query.Key { return query.Key{"event", id, "metrics"} }
func assignmentsKey(id string) query.Key  { return query.Key{"assignments", id} }
func checkInsKey(id string) query.Key     { return query.Key{"checkins", id} }
func usersKey() query.Key                 { return query.Key{"users"} }
