// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"eventsops/cli/internal/keychain"

	"github.com/rs/zerolog"
)

// Durable storage keys. They match the names the web dashboard used.
const (
	tokenKey = keychain.KeyAccessToken
	userKey  = keychain.KeyUser
)

// Backend is the durable side of a Store. *keychain.Manager satisfies it.
// Get returns keychain.ErrNotFound (or any error) when nothing is stored.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Store holds the bearer token and user profile. Reads are served from memory
// and fall back to the durable backend; writes go to both.
//
// A Store with a nil backend is memory-only, which is what the shell uses when
// no OS credential store is reachable.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     zerolog.Logger

	token string
	user  *UserProfile
	// stale marks keys whose durable copy survived a Clear and must not be
	// read back until they are written again.
	stale map[string]bool
}

// NewStore returns an empty store over backend. backend may be nil.
func NewStore(backend Backend, logger zerolog.Logger) *Store {
	return &Store{backend: backend, log: logger}
}

// Token returns the bearer token, if any. Storage failures read as no token.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenLocked()
}

func (s *Store) tokenLocked() (string, bool) {
	if s.token != "" {
		return s.token, true
	}
	if s.backend == nil || s.stale[tokenKey] {
		return "", false
	}
	v, err := s.backend.Get(tokenKey)
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			s.log.Debug().Err(err).Msg("token read failed")
		}
		return "", false
	}
	if v == "" {
		return "", false
	}
	s.token = v
	return v, true
}

// User returns the cached profile, if any. A stored payload that does not
// parse counts as absent.
func (s *Store) User() (UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userLocked()
}

func (s *Store) userLocked() (UserProfile, bool) {
	if s.user != nil {
		return *s.user, true
	}
	if s.backend == nil || s.stale[userKey] {
		return UserProfile{}, false
	}
	raw, err := s.backend.Get(userKey)
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			s.log.Debug().Err(err).Msg("user read failed")
		}
		return UserProfile{}, false
	}
	var u UserProfile
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Debug().Err(err).Msg("stored user is corrupt, ignoring")
		return UserProfile{}, false
	}
	s.user = &u
	return u, true
}

// Credential returns the token and user when both are present.
func (s *Store) Credential() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, okToken := s.tokenLocked()
	user, okUser := s.userLocked()
	if !okToken || !okUser {
		return Credential{}, false
	}
	return Credential{Token: token, User: user}, true
}

// SetToken stores token in memory and durable storage.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setTokenLocked(token)
}

func (s *Store) setTokenLocked(token string) error {
	s.token = token
	delete(s.stale, tokenKey)
	if s.backend == nil {
		return nil
	}
	if err := s.backend.Set(tokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// SetUser stores the profile in memory and durable storage.
func (s *Store) SetUser(u UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setUserLocked(u)
}

func (s *Store) setUserLocked(u UserProfile) error {
	s.user = &u
	delete(s.stale, userKey)
	if s.backend == nil {
		return nil
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.backend.Set(userKey, string(b)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// SetCredential writes token and user together. If either write fails the
// store is wiped so a half-written session is never left behind.
func (s *Store) SetCredential(c Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setTokenLocked(c.Token); err != nil {
		s.clearLocked()
		return err
	}
	if err := s.setUserLocked(c.User); err != nil {
		s.clearLocked()
		return err
	}
	return nil
}

// Clear wipes the token and user from memory and durable storage. A key the
// backend refuses to remove is overwritten with an empty value; if that fails
// too, the key is masked in memory so it still reads as absent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	if s.backend == nil {
		return
	}
	for _, key := range []string{tokenKey, userKey} {
		err := s.backend.Remove(key)
		if err == nil || errors.Is(err, keychain.ErrNotFound) {
			continue
		}
		if blankErr := s.backend.Set(key, ""); blankErr == nil {
			s.log.Debug().Err(err).Str("key", key).Msg("remove failed, stored credential blanked")
			continue
		}
		s.log.Warn().Err(err).Str("key", key).Msg("could not remove stored credential")
		if s.stale == nil {
			s.stale = make(map[string]bool, 2)
		}
		s.stale[key] = true
	}
}
