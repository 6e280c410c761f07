// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	apperrors "eventsops/cli/internal/errors"
)

var kindLabels = map[apperrors.Kind]string{
	apperrors.Validation:         "invalid input",
	apperrors.InvalidCredentials: "login rejected",
	apperrors.SessionExpired:     "session expired",
	apperrors.Backend:            "server error",
	apperrors.Network:            "connection problem",
	apperrors.Storage:            "credential store unavailable",
}

// PresentError renders err as a single notification line for a failed
// action, e.g. "loading events failed (server error): Event not found".
// Uncategorized errors keep the plain "action: message" form. Secrets are
// masked either way.
func PresentError(action string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(userMessage(err))
	label, ok := kindLabels[apperrors.KindOf(err)]
	switch {
	case action == "" && ok:
		return label + ": " + msg
	case action == "":
		return msg
	case ok:
		return action + " failed (" + label + "): " + msg
	default:
		return action + ": " + msg
	}
}
