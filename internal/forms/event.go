// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package forms

import (
	"fmt"
	"strings"
	"time"

	"eventsops/cli/internal/backend"
)

// DateTimeLocal is the layout of an HTML datetime-local value, interpreted in
// the local time zone.
const DateTimeLocal = "2006-01-02T15:04"

// ParseDateTime accepts RFC 3339 or datetime-local input.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{DateTimeLocal, "2006-01-02 15:04", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DDTHH:MM", s)
}

// EventInput is the create-event form as typed.
type EventInput struct {
	Title       string `json:"title" validate:"notblank,min=3"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	StartAt     string `json:"startAt" validate:"required"`
	EndAt       string `json:"endAt" validate:"required"`
	Capacity    int    `json:"capacity" validate:"min=1"`
}

var eventMessages = map[string]string{
	"title.notblank":   "Title is required",
	"title.min":        "Title must be at least 3 characters",
	"startAt.required": "Start date is required",
	"endAt.required":   "End date is required",
	"endAt.gtfield":    "End date must be after start date",
	"capacity.min":     "Capacity must be at least 1",
}

// eventRange is validated once both dates parsed. gtfield is strict, so an
// end equal to the start is rejected.
type eventRange struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt" validate:"gtfield=StartAt"`
}

// EventForm is a validated EventInput.
type EventForm struct {
	Title       string
	Description string
	Venue       string
	StartAt     time.Time
	EndAt       time.Time
	Capacity    int
}

// Validate checks the input and returns the parsed form.
func (in EventInput) Validate() (EventForm, error) {
	errs := check(in, eventMessages)

	var start, end time.Time
	var startErr, endErr error
	if errs.Field("startAt") == "" {
		if start, startErr = ParseDateTime(in.StartAt); startErr != nil {
			errs = append(errs, FieldError{Field: "startAt", Message: "Start date is invalid"})
		}
	}
	if errs.Field("endAt") == "" {
		if end, endErr = ParseDateTime(in.EndAt); endErr != nil {
			errs = append(errs, FieldError{Field: "endAt", Message: "End date is invalid"})
		}
	}
	if strings.TrimSpace(in.StartAt) != "" && strings.TrimSpace(in.EndAt) != "" && startErr == nil && endErr == nil {
		errs = append(errs, check(eventRange{StartAt: start, EndAt: end}, eventMessages)...)
	}
	if len(errs) > 0 {
		return EventForm{}, errs
	}

	return EventForm{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Venue:       strings.TrimSpace(in.Venue),
		StartAt:     start,
		EndAt:       end,
		Capacity:    in.Capacity,
	}, nil
}

// Payload converts the form to the create request. Blank description and
// venue are sent as null; times are sent in UTC.
func (f EventForm) Payload() backend.CreateEventInput {
	return backend.CreateEventInput{
		Title:       f.Title,
		Description: nullable(f.Description),
		Venue:       nullable(f.Venue),
		StartAt:     f.StartAt.UTC().Format(time.RFC3339),
		EndAt:       f.EndAt.UTC().Format(time.RFC3339),
		Capacity:    f.Capacity,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
