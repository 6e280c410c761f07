// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"sync"

	"eventsops/cli/internal/backend"
	apperrors "eventsops/cli/internal/errors"

	"github.com/rs/zerolog"
)

// Session is the single source of truth for whether the operator is signed in.
// It restores a stored session once per process, and establishes and ends
// sessions through the backend. It never navigates; operations that end a
// session return an Outcome for the shell to act on.
type Session struct {
	api    backend.AuthAPI
	store  *Store
	log    zerolog.Logger
	strict bool

	initOnce sync.Once
	initErr  error
	ready    chan struct{}

	mu      sync.RWMutex
	state   State
	token   string
	user    *UserProfile
	settled bool
	pending bool

	listenersMu sync.Mutex
	listeners   map[int]func(Snapshot)
	nextID      int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithStrictRestore keeps a restored session Initializing until the backend
// confirmed the stored token, instead of trusting the cached profile up front.
func WithStrictRestore() SessionOption {
	return func(s *Session) { s.strict = true }
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession creates a session in the Initializing state. Call Init (or Start)
// before consulting it.
func NewSession(api backend.AuthAPI, store *Store, opts ...SessionOption) *Session {
	s := &Session{
		api:       api,
		store:     store,
		log:       zerolog.Nop(),
		state:     Initializing,
		ready:     make(chan struct{}),
		listeners: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init restores the stored session. It runs once per Session; later calls
// wait for and return the first result. The returned error is the failed
// profile refresh, if any; the session is settled either way.
func (s *Session) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.restore(ctx)
		close(s.ready)
	})
	return s.initErr
}

// Start runs Init in the background. Use Ready or guard.Wait to observe it.
func (s *Session) Start(ctx context.Context) {
	go func() { _ = s.Init(ctx) }()
}

// Ready is closed once Init has settled.
func (s *Session) Ready() <-chan struct{} { return s.ready }

func (s *Session) restore(ctx context.Context) error {
	cred, ok := s.store.Credential()
	if !ok {
		// a lone token or profile is not a session
		s.store.Clear()
		s.set(func() {
			s.state = Unauthenticated
			s.token, s.user = "", nil
			s.settled = true
		})
		s.log.Debug().Msg("no stored session")
		return nil
	}

	if !s.strict {
		s.set(func() {
			s.state = Authenticated
			s.token = cred.Token
			u := cred.User
			s.user = &u
		})
	}
	s.log.Debug().Bool("strict", s.strict).Str("user_id", cred.User.ID).Msg("restoring stored session")

	fresh, err := s.api.Me(ctx)
	if err != nil {
		s.store.Clear()
		s.set(func() {
			s.state = Unauthenticated
			s.token, s.user = "", nil
			s.settled = true
		})
		s.log.Debug().Err(err).Msg("stored session rejected")
		return err
	}

	if err := s.store.SetUser(fresh); err != nil {
		s.log.Warn().Err(err).Msg("could not persist refreshed profile")
	}
	s.set(func() {
		s.state = Authenticated
		s.token = cred.Token
		s.user = &fresh
		s.settled = true
	})
	return nil
}

// Snapshot returns a copy of the current session.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:   s.state,
		Token:   s.token,
		Loading: !s.settled || s.pending,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// IsAuthenticated reports whether both a token and a user are held.
func (s *Session) IsAuthenticated() bool { return s.Snapshot().IsAuthenticated() }

// IsLoading reports whether Init has not settled yet or a login is pending.
func (s *Session) IsLoading() bool { return s.Snapshot().IsLoading() }

// Login exchanges credentials for a session. Backend errors are returned as
// they came, with the state untouched.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.set(func() { s.pending = true })
	defer s.set(func() { s.pending = false })

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	cred := Credential{Token: resp.AccessToken, User: resp.User}
	if err := s.store.SetCredential(cred); err != nil {
		// the store wiped itself, mirror that
		s.set(func() {
			s.state = Unauthenticated
			s.token, s.user = "", nil
		})
		return apperrors.Wrap(apperrors.Storage, "could not save the session", err)
	}

	s.set(func() {
		s.state = Authenticated
		s.token = cred.Token
		u := cred.User
		s.user = &u
	})
	s.log.Debug().Str("user_id", resp.User.ID).Msg("logged in")
	return nil
}

// Logout clears the stored credential and always asks to go to the login screen.
func (s *Session) Logout() Outcome {
	s.store.Clear()
	s.set(func() {
		s.state = Unauthenticated
		s.token, s.user = "", nil
	})
	return Outcome{Navigate: RouteLogin}
}

// Expire ends a session the backend stopped accepting. It mirrors a store
// that was already wiped by the client, so the session never claims a token
// the store no longer holds.
func (s *Session) Expire() Outcome {
	s.store.Clear()
	s.set(func() {
		s.state = Unauthenticated
		s.token, s.user = "", nil
	})
	s.log.Debug().Msg("session expired")
	return Outcome{Navigate: RouteLogin}
}

// RefreshUser re-fetches the profile. On failure the session is ended and the
// error returned.
func (s *Session) RefreshUser(ctx context.Context) (UserProfile, error) {
	u, err := s.api.Me(ctx)
	if err != nil {
		s.store.Clear()
		s.set(func() {
			s.state = Unauthenticated
			s.token, s.user = "", nil
		})
		return UserProfile{}, err
	}

	if err := s.store.SetUser(u); err != nil {
		s.log.Warn().Err(err).Msg("could not persist refreshed profile")
	}
	token, ok := s.store.Token()
	s.set(func() {
		s.user = &u
		if ok {
			s.state = Authenticated
			s.token = token
		}
	})
	return u, nil
}

// Register creates an account. It does not sign in.
func (s *Session) Register(ctx context.Context, name, email, password string) (UserProfile, error) {
	return s.api.Register(ctx, name, email, password)
}

// Subscribe calls fn with a snapshot after every change. The returned func
// removes the listener.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// set applies mutate under the lock and notifies listeners outside it.
func (s *Session) set(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.listenersMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
