// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package forms

import (
	"strings"

	"eventsops/cli/internal/backend"
)

// AssignmentForm assigns a staff member to an event under a role.
type AssignmentForm struct {
	UserID   string `json:"userId" validate:"notblank"`
	RoleName string `json:"roleName" validate:"notblank"`
}

var assignmentMessages = map[string]string{
	"userId.notblank":   fillAllFields,
	"roleName.notblank": fillAllFields,
}

// Validate checks that a user and a role were given.
func (f AssignmentForm) Validate() (backend.CreateAssignmentInput, error) {
	if errs := check(f, assignmentMessages); len(errs) > 0 {
		return backend.CreateAssignmentInput{}, errs
	}
	return backend.CreateAssignmentInput{
		UserID:   strings.TrimSpace(f.UserID),
		RoleName: strings.TrimSpace(f.RoleName),
	}, nil
}

// CheckInForm records a staff member's arrival.
type CheckInForm struct {
	UserID string `json:"userId" validate:"notblank"`
}

var checkInMessages = map[string]string{
	"userId.notblank": "Please select a user",
}

// Validate checks that a user was selected.
func (f CheckInForm) Validate() (backend.CreateCheckInInput, error) {
	if errs := check(f, checkInMessages); len(errs) > 0 {
		return backend.CreateCheckInInput{}, errs
	}
	return backend.CreateCheckInInput{UserID: strings.TrimSpace(f.UserID)}, nil
}
