// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
	"time"

	"eventsops/cli/internal/manifest"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every request unless WithHTTPClient overrides it.
const DefaultTimeout = 10 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTokenSource sets where bearer tokens come from and what gets cleared on 401.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHandler registers the hook fired after a 401 wiped the credentials.
func WithUnauthorizedHandler(fn func(UnauthorizedEvent)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithEndpoints overrides the endpoint table.
func WithEndpoints(e manifest.Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for an already resolved base URL
// (see manifest.ResolveBaseURL).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: manifest.DefaultEndpoints(),
		client:    &http.Client{Timeout: DefaultTimeout},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
