// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventsops/cli/internal/backend"
	apperrors "eventsops/cli/internal/errors"
	"eventsops/cli/internal/keychain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuth is a scripted backend.AuthAPI.
type fakeAuth struct {
	meCalls atomic.Int32
	me      func(ctx context.Context) (backend.User, error)
	login   func(ctx context.Context, email, password string) (backend.LoginResponse, error)
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (backend.User, error) {
	return backend.User{ID: "new", Name: name, Email: email}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (backend.LoginResponse, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuth) Me(ctx context.Context) (backend.User, error) {
	f.meCalls.Add(1)
	return f.me(ctx)
}

var ada = UserProfile{ID: "1", Email: "a@b.com", Name: "Ada"}

func storedStore(t *testing.T) (*Store, *keychain.Manager) {
	t.Helper()
	durable := newDurable()
	require.NoError(t, NewStore(durable, zerolog.Nop()).SetCredential(Credential{Token: "abc", User: ada}))
	return NewStore(durable, zerolog.Nop()), durable
}

// stubBackend serves the auth endpoints the way the EventsOps API does.
func stubBackend(t *testing.T, validToken string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if validToken == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"statusCode":401,"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"accessToken":"` + validToken + `","user":{"id":"1","email":"a@b.com"}}`))
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if validToken == "" || r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"statusCode":401,"message":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"1","email":"a@b.com","name":"Ada Lovelace"}`))
	})
	mux.HandleFunc("GET /api/events", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"statusCode":401,"message":"Unauthorized"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSnapshotIsAuthenticatedNeedsBoth(t *testing.T) {
	u := ada
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"both", Snapshot{State: Authenticated, Token: "abc", User: &u}, true},
		{"token only", Snapshot{State: Authenticated, Token: "abc"}, false},
		{"user only", Snapshot{State: Authenticated, User: &u}, false},
		{"neither", Snapshot{State: Unauthenticated}, false},
		{"initializing", Snapshot{State: Initializing, Token: "abc", User: &u, Loading: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.IsAuthenticated())
		})
	}
}

func TestInitOptimisticRestore(t *testing.T) {
	store, _ := storedStore(t)
	release := make(chan struct{})
	api := &fakeAuth{me: func(ctx context.Context) (backend.User, error) {
		<-release
		return backend.User{ID: "1", Email: "a@b.com", Name: "Ada L."}, nil
	}}
	s := NewSession(api, store)

	seen := make(chan Snapshot, 8)
	s.Subscribe(func(snap Snapshot) { seen <- snap })

	assert.Equal(t, Initializing, s.Snapshot().State)
	assert.True(t, s.IsLoading())

	done := make(chan error, 1)
	go func() { done <- s.Init(context.Background()) }()

	// authenticated from the cache before the refresh answered
	first := <-seen
	assert.Equal(t, Authenticated, first.State)
	assert.True(t, first.IsAuthenticated())
	assert.True(t, first.Loading)
	assert.Equal(t, "Ada", first.User.Name)

	close(release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, "Ada L.", snap.User.Name)

	u, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "Ada L.", u.Name)
}

func TestInitStrictRestoreWaitsForRefresh(t *testing.T) {
	store, _ := storedStore(t)
	release := make(chan struct{})
	api := &fakeAuth{me: func(ctx context.Context) (backend.User, error) {
		<-release
		return ada, nil
	}}
	s := NewSession(api, store, WithStrictRestore())

	var mu sync.Mutex
	var states []State
	s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		states = append(states, snap.State)
		mu.Unlock()
	})

	done := make(chan error, 1)
	go func() { done <- s.Init(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, Initializing, s.Snapshot().State)
	assert.False(t, s.IsAuthenticated())

	close(release)
	require.NoError(t, <-done)
	assert.True(t, s.IsAuthenticated())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{Authenticated}, states)
}

func TestInitWithoutStoredSession(t *testing.T) {
	durable := newDurable()
	require.NoError(t, durable.Set(keychain.KeyAccessToken, "lonely"))
	store := NewStore(durable, zerolog.Nop())
	api := &fakeAuth{}
	s := NewSession(api, store)

	require.NoError(t, s.Init(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, Unauthenticated, snap.State)
	assert.False(t, snap.Loading)
	assert.Zero(t, api.meCalls.Load(), "no network call without a stored session")

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestInitRejectedTokenEndsUnauthenticated(t *testing.T) {
	srv := stubBackend(t, "")
	store, durable := storedStore(t)
	client := backend.New(srv.URL, backend.WithTokenSource(store))
	s := NewSession(client, store)

	err := s.Init(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)

	snap := s.Snapshot()
	assert.Equal(t, Unauthenticated, snap.State)
	assert.False(t, snap.Loading)
	assert.False(t, snap.IsAuthenticated())

	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.User()
	assert.False(t, ok)
	_, err = durable.Get(keychain.KeyUser)
	assert.ErrorIs(t, err, keychain.ErrNotFound)
}

func TestInitRunsOnce(t *testing.T) {
	store, _ := storedStore(t)
	api := &fakeAuth{me: func(ctx context.Context) (backend.User, error) {
		return ada, nil
	}}
	s := NewSession(api, store)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Init(context.Background())
		}()
	}
	wg.Wait()
	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, int32(1), api.meCalls.Load())

	select {
	case <-s.Ready():
	default:
		t.Fatal("Ready not closed after Init")
	}
}

func TestUnauthorizedCallClearsStoreAndRejects(t *testing.T) {
	srv := stubBackend(t, "abc")
	store, _ := storedStore(t)

	var navigated []backend.UnauthorizedEvent
	client := backend.New(srv.URL,
		backend.WithTokenSource(store),
		backend.WithUnauthorizedHandler(func(ev backend.UnauthorizedEvent) {
			// the store is already empty when the shell hears about it
			_, ok := store.Token()
			assert.False(t, ok)
			navigated = append(navigated, ev)
		}),
	)

	_, err := client.ListEvents(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	require.Len(t, navigated, 1)

	_, ok := store.User()
	assert.False(t, ok)
}

func TestUnauthorizedCallExpiresSession(t *testing.T) {
	srv := stubBackend(t, "abc")
	store, _ := storedStore(t)

	var s *Session
	client := backend.New(srv.URL,
		backend.WithTokenSource(store),
		backend.WithUnauthorizedHandler(func(ev backend.UnauthorizedEvent) {
			if ev.HadToken {
				s.Expire()
			}
		}),
	)
	s = NewSession(client, store)
	require.NoError(t, s.Init(context.Background()))
	require.True(t, s.IsAuthenticated())

	// /api/events refuses every token
	_, err := client.ListEvents(context.Background())
	require.ErrorIs(t, err, backend.ErrUnauthorized)

	_, ok := store.Token()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
	snap := s.Snapshot()
	assert.Equal(t, Unauthenticated, snap.State)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)
}

func TestExpire(t *testing.T) {
	store, durable := storedStore(t)
	s := NewSession(&fakeAuth{me: func(context.Context) (backend.User, error) { return ada, nil }}, store)
	require.NoError(t, s.Init(context.Background()))
	require.True(t, s.IsAuthenticated())

	out := s.Expire()
	assert.Equal(t, RouteLogin, out.Navigate)
	assert.False(t, s.IsAuthenticated())
	_, err := durable.Get(keychain.KeyAccessToken)
	assert.ErrorIs(t, err, keychain.ErrNotFound)
}

func TestLoginStoresCredential(t *testing.T) {
	srv := stubBackend(t, "abc")
	store := NewStore(newDurable(), zerolog.Nop())
	client := backend.New(srv.URL, backend.WithTokenSource(store))
	s := NewSession(client, store)
	require.NoError(t, s.Init(context.Background()))

	var pending []bool
	s.Subscribe(func(snap Snapshot) { pending = append(pending, snap.Loading) })

	require.NoError(t, s.Login(context.Background(), "a@b.com", "secret"))

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
	u, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, UserProfile{ID: "1", Email: "a@b.com"}, u)

	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsLoading())
	require.NotEmpty(t, pending)
	assert.True(t, pending[0], "pending flag raised while the request runs")
	assert.False(t, pending[len(pending)-1])
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := stubBackend(t, "")
	store := NewStore(newDurable(), zerolog.Nop())
	client := backend.New(srv.URL, backend.WithTokenSource(store))
	s := NewSession(client, store)
	require.NoError(t, s.Init(context.Background()))

	err := s.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.JSONEq(t, `{"statusCode":401,"message":"Invalid credentials"}`, string(apiErr.Body))

	_, ok := store.Token()
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsLoading())
	assert.Equal(t, Unauthenticated, s.Snapshot().State)
}

func TestLoginStorageFailure(t *testing.T) {
	durable := newDurable()
	store := NewStore(&flakyBackend{inner: durable, failSet: keychain.KeyUser}, zerolog.Nop())
	api := &fakeAuth{login: func(ctx context.Context, email, password string) (backend.LoginResponse, error) {
		return backend.LoginResponse{AccessToken: "abc", User: ada}, nil
	}}
	s := NewSession(api, store)

	err := s.Login(context.Background(), "a@b.com", "secret")
	require.Error(t, err)
	assert.Equal(t, apperrors.Storage, apperrors.KindOf(err))
	assert.False(t, s.IsAuthenticated())
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestLogoutAlwaysClears(t *testing.T) {
	t.Run("with session", func(t *testing.T) {
		store, durable := storedStore(t)
		api := &fakeAuth{me: func(ctx context.Context) (backend.User, error) { return ada, nil }}
		s := NewSession(api, store)
		require.NoError(t, s.Init(context.Background()))
		require.True(t, s.IsAuthenticated())

		out := s.Logout()
		assert.Equal(t, RouteLogin, out.Navigate)
		assert.False(t, s.IsAuthenticated())
		_, err := durable.Get(keychain.KeyAccessToken)
		assert.ErrorIs(t, err, keychain.ErrNotFound)
	})

	t.Run("without session", func(t *testing.T) {
		store := NewStore(newDurable(), zerolog.Nop())
		s := NewSession(&fakeAuth{}, store)

		out := s.Logout()
		assert.Equal(t, Outcome{Navigate: RouteLogin}, out)
		_, ok := store.Token()
		assert.False(t, ok)
	})
}

func TestRefreshUser(t *testing.T) {
	store, _ := storedStore(t)
	fail := false
	api := &fakeAuth{me: func(ctx context.Context) (backend.User, error) {
		if fail {
			return backend.User{}, errors.New("boom")
		}
		return backend.User{ID: "1", Email: "a@b.com", Name: "Renamed"}, nil
	}}
	s := NewSession(api, store)
	require.NoError(t, s.Init(context.Background()))

	u, err := s.RefreshUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Renamed", u.Name)
	assert.True(t, s.IsAuthenticated())

	fail = true
	_, err = s.RefreshUser(context.Background())
	require.EqualError(t, err, "boom")
	assert.False(t, s.IsAuthenticated())
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestRegisterDoesNotSignIn(t *testing.T) {
	store := NewStore(newDurable(), zerolog.Nop())
	s := NewSession(&fakeAuth{}, store)
	require.NoError(t, s.Init(context.Background()))

	u, err := s.Register(context.Background(), "Ada", "a@b.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)
	assert.False(t, s.IsAuthenticated())
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	s := NewSession(&fakeAuth{}, NewStore(nil, zerolog.Nop()))
	calls := 0
	unsubscribe := s.Subscribe(func(Snapshot) { calls++ })
	s.Logout()
	unsubscribe()
	s.Logout()
	assert.Equal(t, 1, calls)
}
