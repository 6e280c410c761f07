// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"fmt"
	"net/url"
)

// DefaultBaseURL is used when neither config nor environment name an API.
const DefaultBaseURL = "http://localhost:3001"

// ResolveBaseURL validates and normalizes the configured API address.
// An empty value resolves to DefaultBaseURL; only absolute http(s) URLs
// are accepted. Trailing slashes are dropped.
func ResolveBaseURL(raw string) (string, error) {
	base := trimBase(raw)
	if base == "" {
		return DefaultBaseURL, nil
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid API URL %q: missing host", raw)
	}
	return base, nil
}
