// Package auth holds the operator's session: the credential store that mirrors
// the token and profile between memory and the OS keychain, and the session
// manager that restores, establishes and ends sessions against the backend.
package auth

import "eventsops/cli/internal/backend"

// UserProfile is the backend-owned profile cached alongside the token.
type UserProfile = backend.User

// Credential is a token and the profile it belongs to. They are set and
// cleared together.
type Credential struct {
	Token string
	User  UserProfile
}

// State is the session lifecycle state.
type State int

const (
	Initializing State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	State State
	Token string
	User  *UserProfile
	// Loading is true until the startup restore settled and while a login is pending.
	Loading bool
}

// IsAuthenticated is true only when both a token and a user are held.
func (s Snapshot) IsAuthenticated() bool {
	return s.State == Authenticated && s.Token != "" && s.User != nil
}

// IsLoading reports whether the session is still settling.
func (s Snapshot) IsLoading() bool { return s.Loading }

// Route names a screen of the shell.
type Route string

const (
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
)

// Outcome tells the hosting shell what to do next. A zero Outcome means stay.
type Outcome struct {
	Navigate Route
}
