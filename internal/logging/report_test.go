package logging

import (
	"errors"
	"testing"

	apperrors "eventsops/cli/internal/errors"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	assert.Empty(t, FormatError(nil))

	out := FormatError(apperrors.New(apperrors.SessionExpired, "expired"))
	assert.Contains(t, out, "Session expired")
	assert.Contains(t, out, "eventsops login")

	out = FormatError(apperrors.Wrap(apperrors.Storage, "could not save the session", errors.New("token=abc locked")))
	assert.Contains(t, out, "Credential store unavailable")
	assert.Contains(t, out, "token=***")
	assert.NotContains(t, out, "abc")

	out = FormatError(apperrors.New(apperrors.InvalidCredentials, "Invalid credentials"))
	assert.Contains(t, out, "Login failed")
	assert.Contains(t, out, "Invalid credentials")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("disabled"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestPresentError(t *testing.T) {
	assert.Empty(t, PresentError("loading events", nil))
	tests := []struct {
		name   string
		action string
		err    error
		want   string
	}{
		{"uncategorized", "loading events", errors.New("GET /x?token=s3cret"), "loading events: GET /x?token=***"},
		{"backend kind", "loading events", apperrors.New(apperrors.Backend, "Event not found"), "loading events failed (server error): Event not found"},
		{"storage without action", "", apperrors.Wrap(apperrors.Storage, "could not save the session", errors.New("locked")), "credential store unavailable: could not save the session"},
		{"plain without action", "", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PresentError(tt.action, tt.err))
		})
	}
}
