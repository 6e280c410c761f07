// Package guard decides what a screen may do given the session state.
// Protected screens wait out the startup restore, then either render or send
// the operator to the login screen; the login screen sends an already signed
// in operator to the dashboard.
package guard

import (
	"context"

	"eventsops/cli/internal/auth"
)

// Action is what the hosting shell should do with a screen.
type Action int

const (
	// ShowLoading means the session is still settling; issue no data requests.
	ShowLoading Action = iota
	// Redirect means leave for Decision.Route and render nothing.
	Redirect
	// Render means the screen may render and fetch data.
	Render
)

func (a Action) String() string {
	switch a {
	case ShowLoading:
		return "loading"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decision is the guard verdict. Route is set only for Redirect.
type Decision struct {
	Action Action
	Route  auth.Route
}

// Protect is applied to every screen that needs a session.
func Protect(s auth.Snapshot) Decision {
	switch {
	case s.State == auth.Initializing:
		return Decision{Action: ShowLoading}
	case !s.IsAuthenticated():
		return Decision{Action: Redirect, Route: auth.RouteLogin}
	default:
		return Decision{Action: Render}
	}
}

// PublicOnly is applied to the login and register screens.
func PublicOnly(s auth.Snapshot) Decision {
	switch {
	case s.State == auth.Initializing:
		return Decision{Action: ShowLoading}
	case s.IsAuthenticated():
		return Decision{Action: Redirect, Route: auth.RouteDashboard}
	default:
		return Decision{Action: Render}
	}
}

// Readiness is the part of *auth.Session the guard waits on.
type Readiness interface {
	Ready() <-chan struct{}
	Snapshot() auth.Snapshot
}

// Wait blocks until the startup restore settled and returns the settled
// snapshot. It does not start the restore; see auth.Session.Start.
func Wait(ctx context.Context, s Readiness) (auth.Snapshot, error) {
	select {
	case <-s.Ready():
		return s.Snapshot(), nil
	case <-ctx.Done():
		return auth.Snapshot{}, ctx.Err()
	}
}
