// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package query caches backend reads by hierarchical key. Concurrent reads of
// one key share a single request, entries expire after a TTL, and a mutation
// invalidates every key under a prefix so the next read refetches.
package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a cached read is served without refetching.
const DefaultTTL = 30 * time.Second

// Key identifies a cached read, e.g. Key{"event", id, "metrics"}.
type Key []string

func (k Key) String() string { return strings.Join(k, "\x00") }

// HasPrefix reports whether p is a leading part of k.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
	group singleflight.Group

	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]Key
	// gen is bumped by every invalidation; a fetch that started before it
	// does not populate the cache.
	gen uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the freshness window. Zero or less disables caching but keeps
// request de-duplication.
func WithTTL(d time.Duration) Option { return func(c *Cache) { c.ttl = d } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(c *Cache) { c.now = now } }

// WithLogger sets the cache logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Cache) { c.log = l } }

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:      DefaultTTL,
		now:      time.Now,
		log:      zerolog.Nop(),
		entries:  make(map[string]entry),
		inflight: make(map[string]Key),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key or calls fetch. Failed fetches are
// not cached.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	id := key.String()

	c.mu.Lock()
	if e, ok := c.entries[id]; ok && c.ttl > 0 && c.now().Sub(e.fetchedAt) < c.ttl {
		c.mu.Unlock()
		if v, ok := e.value.(T); ok {
			return v, nil
		}
	} else {
		c.mu.Unlock()
	}

	v, err, shared := c.group.Do(id, func() (any, error) {
		c.mu.Lock()
		gen := c.gen
		c.inflight[id] = key
		c.mu.Unlock()

		v, err := fetch(ctx)

		c.mu.Lock()
		delete(c.inflight, id)
		if err == nil && c.ttl > 0 && gen == c.gen {
			c.entries[id] = entry{key: key, value: v, fetchedAt: c.now()}
		}
		c.mu.Unlock()
		return v, err
	})
	if shared {
		c.log.Debug().Strs("key", key).Msg("shared in-flight fetch")
	}
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}

// Invalidate drops every entry whose key starts with prefix. In-flight fetches
// under prefix are detached so later reads start a new request.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
		}
	}
	for id, k := range c.inflight {
		if k.HasPrefix(prefix) {
			c.group.Forget(id)
		}
	}
	c.log.Debug().Strs("prefix", prefix).Msg("invalidated")
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
