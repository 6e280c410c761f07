// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain is the durable half of the credential store. It keeps the
// bearer token and the serialized user profile in the OS credential store
// (macOS Keychain, Windows Credential Manager, Secret Service/KWallet/keyctl on
// Linux) and falls back to an encrypted file keyring under the XDG state dir
// when none of those is reachable.
//
// Manager is safe for concurrent use. It knows nothing about sessions; the
// in-memory mirror and the token/user pairing live in internal/auth.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"eventsops/cli/internal/xdg"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog"
)

// ServiceName identifies our namespace in the OS credential store.
const ServiceName = "eventsops"

// Keys used for credentials. The token and the profile are the only
// credential entries; ClearAuth removes exactly these.
const (
	KeyAccessToken = "accessToken"
	KeyUser        = "user"
)

// PasswordEnv supplies the passphrase of the encrypted file keyring so that
// non-interactive runs (CI, scripts) never block on a prompt.
const PasswordEnv = "EVENTSOPS_KEYRING_PASSWORD"

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("keychain: key not found")

// keychainBackend is satisfied by the native macOS security command wrapper.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Manager provides thread-safe access to the credential entries.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// NewManager opens the platform credential store. On macOS the security
// command is preferred because it avoids repeated keychain ACL prompts for
// unsigned binaries.
func NewManager(logger zerolog.Logger) (*Manager, error) {
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend(logger)
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		logger.Debug().Err(err).Msg("security command unavailable, using keyring library")
	}

	ring, err := openRing()
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithKeyring wraps an already opened keyring. Tests pass a
// keyring.NewArrayKeyring here.
func NewManagerWithKeyring(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

func openRing() (keyring.Keyring, error) {
	stateDir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}

	cfg := keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.KeyCtlBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		KeychainTrustApplication: true,
		LibSecretCollectionName:  ServiceName,
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
		KeyCtlScope:              "user",
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
		FileDir:                  filepath.Join(stateDir, "keyring"),
		FilePasswordFunc:         filePassword,
	}
	return keyring.Open(cfg)
}

func filePassword(prompt string) (string, error) {
	if v := os.Getenv(PasswordEnv); v != "" {
		return v, nil
	}
	return keyring.TerminalPrompt(prompt)
}

// Set stores value under key, replacing any previous value.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(key, value)
	}
	return m.ring.Set(keyring.Item{Key: key, Data: []byte(value), Label: ServiceName + " " + key})
}

// Get returns the stored value or ErrNotFound.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		v, err := m.backend.Get(key)
		if err != nil {
			return "", err
		}
		if v == "" {
			return "", ErrNotFound
		}
		return v, nil
	}

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNotFound
	}
	return string(it.Data), nil
}

// Remove deletes key. A key that is already absent is not an error.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(key)
}

func (m *Manager) removeLocked(key string) error {
	if m.backend != nil {
		return m.backend.Delete(key)
	}
	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// ClearAuth removes the token and the user profile. Both removals are always
// attempted; the returned error joins whatever failed.
func (m *Manager) ClearAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return errors.Join(
		m.removeLocked(KeyAccessToken),
		m.removeLocked(KeyUser),
	)
}
