// Package xdg resolves the XDG Base Directory locations used by eventsops.
// Configuration lives under the config dir; the encrypted file keyring
// (used only when no OS credential store is reachable) lives under the
// state dir. Both are created private (0700) on first use.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used below every XDG base directory.
const AppName = "eventsops"

// ConfigDir returns $XDG_CONFIG_HOME/eventsops, falling back to
// ~/.config/eventsops.
func ConfigDir() (string, error) {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns $XDG_STATE_HOME/eventsops, falling back to
// ~/.local/state/eventsops.
func StateDir() (string, error) {
	return appDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func appDir(envVar, homeRelative string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRelative)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
