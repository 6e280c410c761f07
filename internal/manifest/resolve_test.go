// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package manifest

import (
	"testing"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        string
		expectError bool
	}{
		{name: "empty uses default", raw: "", want: DefaultBaseURL},
		{name: "whitespace uses default", raw: "   ", want: DefaultBaseURL},
		{name: "trailing slash trimmed", raw: "https://api.example.com/", want: "https://api.example.com"},
		{name: "path kept", raw: "http://localhost:3001/backend//", want: "http://localhost:3001/backend"},
		{name: "unsupported scheme", raw: "ftp://example.com", expectError: true},
		{name: "missing scheme", raw: "localhost:3001", expectError: true},
		{name: "missing host", raw: "http://", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBaseURL(tt.raw)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q, got %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveBaseURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEndpointPaths(t *testing.T) {
	e := DefaultEndpoints()

	cases := map[string]string{
		e.EventStats():             "/api/events/stats",
		e.Event("42"):              "/api/events/42",
		e.PublishEvent("42"):       "/api/events/42/publish",
		e.ArchiveEvent("42"):       "/api/events/42/archive",
		e.EventMetrics("42"):       "/api/events/42/metrics",
		e.Assignments("42"):        "/api/events/42/assignments",
		e.Assignment("42", "a/1"):  "/api/events/42/assignments/a%2F1",
		e.CheckIns("42"):           "/api/events/42/checkins",
		e.Event("needs escaping?"): "/api/events/needs%20escaping%3F",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	}
}
