// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dashboard

import (
	"context"

	"eventsops/cli/internal/backend"
	"eventsops/cli/internal/forms"
	"eventsops/cli/internal/query"
)

// Assignments backs the staff assignment screen of one event.
type Assignments struct {
	api   backend.AssignmentsAPI
	cache *query.Cache
}

func NewAssignments(api backend.AssignmentsAPI, cache *query.Cache) *Assignments {
	return &Assignments{api: api, cache: cache}
}

// List returns the assignments of eventID.
func (a *Assignments) List(ctx context.Context, eventID string) ([]backend.Assignment, error) {
	return query.Fetch(ctx, a.cache, assignmentsKey(eventID), func(ctx context.Context) ([]backend.Assignment, error) {
		return a.api.ListAssignments(ctx, eventID)
	})
}

// Add assigns a user to eventID under a role.
func (a *Assignments) Add(ctx context.Context, eventID string, f forms.AssignmentForm) (backend.Assignment, Notice, error) {
	in, err := f.Validate()
	if err != nil {
		return backend.Assignment{}, Failure(err, ""), err
	}
	as, err := a.api.CreateAssignment(ctx, eventID, in)
	if err != nil {
		return backend.Assignment{}, Failure(err, "Failed to create assignment"), err
	}
	a.invalidate(eventID)
	return as, Success("Assignment created successfully"), nil
}

// Remove deletes an assignment.
func (a *Assignments) Remove(ctx context.Context, eventID, assignmentID string) (Notice, error) {
	if err := a.api.DeleteAssignment(ctx, eventID, assignmentID); err != nil {
		return Failure(err, "Failed to delete assignment"), err
	}
	a.invalidate(eventID)
	return Success("Assignment deleted successfully"), nil
}

func (a *Assignments) invalidate(eventID string) {
	a.cache.Invalidate(assignmentsKey(eventID))
	a.cache.Invalidate(eventMetricsKey(eventID))
}

// CheckIns backs the check-in screen of one event.
type CheckIns struct {
	api   backend.CheckInsAPI
	cache *query.Cache
}

func NewCheckIns(api backend.CheckInsAPI, cache *query.Cache) *CheckIns {
	return &CheckIns{api: api, cache: cache}
}

// List returns the check-ins of eventID.
func (c *CheckIns) List(ctx context.Context, eventID string) ([]backend.CheckIn, error) {
	return query.Fetch(ctx, c.cache, checkInsKey(eventID), func(ctx context.Context) ([]backend.CheckIn, error) {
		return c.api.ListCheckIns(ctx, eventID)
	})
}

// Record checks a user in to eventID.
func (c *CheckIns) Record(ctx context.Context, eventID string, f forms.CheckInForm) (backend.CheckIn, Notice, error) {
	in, err := f.Validate()
	if err != nil {
		return backend.CheckIn{}, Failure(err, ""), err
	}
	ci, err := c.api.CreateCheckIn(ctx, eventID, in)
	if err != nil {
		return backend.CheckIn{}, Failure(err, "Failed to record check-in"), err
	}
	c.cache.Invalidate(checkInsKey(eventID))
	c.cache.Invalidate(eventMetricsKey(eventID))
	return ci, Success("Check-in recorded successfully"), nil
}

// Users backs the staff directory and the user pickers.
type Users struct {
	api   backend.UsersAPI
	cache *query.Cache
}

func NewUsers(api backend.UsersAPI, cache *query.Cache) *Users {
	return &Users{api: api, cache: cache}
}

// List returns every user.
func (u *Users) List(ctx context.Context) ([]backend.User, error) {
	return query.Fetch(ctx, u.cache, usersKey(), u.api.ListUsers)
}
