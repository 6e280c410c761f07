// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the token and profile go to the OS
// keychain. Environment variables (optionally from .env files) override the
// file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"eventsops/cli/internal/xdg"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	// APIURL is the backend origin; empty means the built-in default.
	APIURL    string `json:"api_url,omitempty" env:"EVENTSOPS_API_URL"`
	LogLevel  string `json:"log_level" env:"EVENTSOPS_LOG_LEVEL"`
	LogFormat string `json:"log_format" env:"EVENTSOPS_LOG_FORMAT"`
	Theme     Theme  `json:"theme" env:"EVENTSOPS_THEME"`
	// StrictRestore keeps a restored session unconfirmed until the backend
	// accepted the stored token.
	StrictRestore bool `json:"strict_restore" env:"EVENTSOPS_STRICT_RESTORE"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "console",
		Theme:     ThemeSystem,
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, applies environment overrides and sanitizes
// the result. A missing file yields defaults.
func Load() (Config, error) {
	c, err := LoadFile()
	if err != nil {
		return c, err
	}

	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse environment: %w", err)
	}
	c.Sanitize()
	return c, nil
}

// LoadFile reads only the config file, without environment overrides.
func LoadFile() (Config, error) {
	c := Default()
	p, err := Path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return c, err
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
	}
	c.Sanitize()
	return c, nil
}

// Set updates one setting by its file key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "theme":
		t, err := ParseTheme(value)
		if err != nil {
			return err
		}
		c.Theme = t
	case "strict_restore":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("strict_restore: %w", err)
		}
		c.StrictRestore = b
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Sanitize replaces values the CLI cannot use with defaults.
func (c *Config) Sanitize() {
	c.APIURL = strings.TrimSpace(c.APIURL)

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		c.LogLevel = "info"
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != "json" {
		c.LogFormat = "console"
	}

	if t, err := ParseTheme(string(c.Theme)); err == nil {
		c.Theme = t
	} else {
		c.Theme = ThemeSystem
	}
}
