// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging sets up the zerolog logger and keeps credentials out of
// logs and operator-facing error text.
package logging

import (
	"regexp"
	"strings"
)

var (
	rePassword   = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken      = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJSONSecret = regexp.MustCompile(`(?i)("(?:accessToken|access_token|password)"\s*:\s*")([^"]*)(")`)
	reURLCreds   = regexp.MustCompile(`(?i)(://)([^:/@\s]+):([^@/\s]+)(@)`)
)

// Mask replaces sensitive values in s with "***".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJSONSecret.ReplaceAllString(out, "$1***$3")
	out = reURLCreds.ReplaceAllString(out, "$1*:*$4")
	for _, k := range []string{"EVENTSOPS_KEYRING_PASSWORD"} {
		if i := strings.Index(out, k+"="); i >= 0 {
			out = out[:i+len(k)+1] + "***"
		}
	}
	return out
}
