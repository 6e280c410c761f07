// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "eventsops/cli/internal/errors"
)

// ErrUnauthorized is wrapped by every *APIError with status 401.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx backend response. Body keeps the raw payload intact.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: extractMessage(body),
		Body:    body,
	}
}

func (e *APIError) Error() string {
	text := http.StatusText(e.Status)
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, text, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, text)
}

// Unwrap exposes ErrUnauthorized for 401 responses.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// ErrorKind categorizes the response for reporting.
func (e *APIError) ErrorKind() apperrors.Kind {
	if e.Status == http.StatusUnauthorized {
		return apperrors.SessionExpired
	}
	return apperrors.Backend
}

// MessageOf returns the backend-supplied message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// extractMessage reads "message" (string or list of strings) or "error" from
// a JSON error payload.
func extractMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg := rawText(payload.Message); msg != "" {
		return msg
	}
	return rawText(payload.Error)
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.TrimSpace(strings.Join(list, "; "))
	}
	return ""
}
