// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"eventsops/cli/internal/manifest"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries a per-request id for backend log correlation.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 4 << 20

// TokenSource supplies the bearer token and is wiped when the backend answers 401.
// *auth.Store implements it.
type TokenSource interface {
	Token() (string, bool)
	Clear()
}

// UnauthorizedEvent is delivered after a 401 response cleared the credentials.
// The receiver decides how to get the operator back to the login flow.
type UnauthorizedEvent struct {
	Method    string
	Path      string
	RequestID string
	// HadToken reports whether the rejected request carried a bearer token.
	HadToken bool
}

// Client implements API over the EventsOps REST endpoints.
type Client struct {
	// baseURL is the resolved API origin, without trailing slash
	baseURL string
	// endpoints contains the URL paths for the API
	endpoints manifest.Endpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	// tokens provides the bearer token; nil means every request is anonymous
	tokens TokenSource
	// onUnauthorized is notified after a 401 wiped the credentials
	onUnauthorized func(UnauthorizedEvent)
	log            zerolog.Logger
}

// BaseURL returns the origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// getData performs a request and decodes the payload into out, unwrapping the
// backend's optional {"data": ...} envelope.
func (c *Client) getData(ctx context.Context, method, path string, in, out any) error {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, in, &raw); err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapData(raw), out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// do sends one request. Authorization is attached when the token source has a
// token. A 401 clears the token source and fires the unauthorized hook before
// the *APIError is returned, so the caller still sees the rejection.
func (c *Client) do(ctx context.Context, method, path string, in any, out *json.RawMessage) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	hadToken := c.authorize(req)

	log := c.log.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", reqID).
		Logger()

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Bool("authorized", hadToken).
		Msg("request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(UnauthorizedEvent{Method: method, Path: path, RequestID: reqID, HadToken: hadToken})
		return newAPIError(method, path, resp.StatusCode, raw)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp.StatusCode, raw)
	}

	if out != nil {
		*out = bytes.TrimSpace(raw)
	}
	return nil
}

// authorize attaches the bearer token and reports whether it did.
func (c *Client) authorize(req *http.Request) bool {
	if c.tokens == nil {
		return false
	}
	token, ok := c.tokens.Token()
	if !ok || token == "" {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return true
}

func (c *Client) handleUnauthorized(ev UnauthorizedEvent) {
	c.log.Debug().Str("path", ev.Path).Bool("had_token", ev.HadToken).Msg("unauthorized response, clearing credentials")
	if c.tokens != nil {
		c.tokens.Clear()
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized(ev)
	}
}

// unwrapData returns the value under "data" when the payload is an envelope,
// otherwise the payload itself.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return raw
}

// decodeList decodes a JSON array. Anything that is not an array decodes to an
// empty list, matching how the dashboard tolerated odd list payloads.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// getList performs a GET and decodes an optionally enveloped JSON array.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.getData(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw)
	if err != nil {
		return nil, fmt.Errorf("decode GET %s response: %w", path, err)
	}
	return items, nil
}
