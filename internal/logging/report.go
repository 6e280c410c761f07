// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"strings"

	apperrors "eventsops/cli/internal/errors"

	"github.com/pterm/pterm"
)

// FormatError renders err for the operator according to its kind.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	kind := apperrors.KindOf(err)
	msg := userMessage(err)

	var b strings.Builder
	switch kind {
	case apperrors.Validation:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Invalid input"))
		b.WriteString("\n")
		for _, line := range strings.Split(msg, "; ") {
			b.WriteString("  • " + line + "\n")
		}
		return b.String()

	case apperrors.InvalidCredentials:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Login failed"))
		b.WriteString("\n")
		b.WriteString(msg + "\n")
		return b.String()

	case apperrors.SessionExpired:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Session expired"))
		b.WriteString("\n\n")
		b.WriteString("Your session is no longer valid and the stored credentials were removed.\n\n")
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Please run 'eventsops login' and try again"))
		b.WriteString("\n")
		return b.String()

	case apperrors.Storage:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Credential store unavailable"))
		b.WriteString("\n\n")
		b.WriteString("The session could not be saved. This usually happens when:\n")
		b.WriteString("  • The OS keychain is locked\n")
		b.WriteString("  • No keychain service is running (headless Linux)\n")
		b.WriteString("  • EVENTSOPS_KEYRING_PASSWORD is missing for the file keyring\n")

	case apperrors.Backend:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Request failed"))
		b.WriteString("\n")
		b.WriteString(msg + "\n")
		return b.String()

	default:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Error"))
		b.WriteString("\n")
		b.WriteString(msg + "\n")
		return b.String()
	}

	if details := Mask(err.Error()); strings.TrimSpace(details) != "" {
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + details))
		b.WriteString("\n")
	}
	return b.String()
}

// userMessage prefers the message of an *errors.E over the full chain.
func userMessage(err error) string {
	if e, ok := err.(*apperrors.E); ok && e.Message != "" {
		return e.Message
	}
	return Mask(err.Error())
}
