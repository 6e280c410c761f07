package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyHasPrefix(t *testing.T) {
	k := Key{"event", "42", "metrics"}
	assert.True(t, k.HasPrefix(Key{"event"}))
	assert.True(t, k.HasPrefix(Key{"event", "42"}))
	assert.True(t, k.HasPrefix(k))
	assert.False(t, k.HasPrefix(Key{"event", "4"}))
	assert.False(t, Key{"event"}.HasPrefix(k))
	assert.True(t, k.HasPrefix(Key{}))
}

func TestFetchCachesUntilTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(WithTTL(time.Minute), WithClock(func() time.Time { return now }))

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}
	ctx := context.Background()

	v, err := Fetch(ctx, c, Key{"events"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, _ = Fetch(ctx, c, Key{"events"}, fetch)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	v, _ = Fetch(ctx, c, Key{"events"}, fetch)
	assert.Equal(t, 2, v)
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	c := New()
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("boom")
		}
		return "ok", nil
	}

	_, err := Fetch(context.Background(), c, Key{"users"}, fetch)
	require.Error(t, err)
	v, err := Fetch(context.Background(), c, Key{"users"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestInvalidatePrefix(t *testing.T) {
	c := New()
	ctx := context.Background()
	var calls atomic.Int32
	fetch := func(context.Context) (int32, error) { return calls.Add(1), nil }

	for _, k := range []Key{{"events"}, {"events", "stats"}, {"event", "1"}, {"event", "1", "metrics"}, {"users"}} {
		_, err := Fetch(ctx, c, k, fetch)
		require.NoError(t, err)
	}
	require.Equal(t, 5, c.Len())

	c.Invalidate(Key{"event", "1"})
	assert.Equal(t, 3, c.Len())

	c.Invalidate(Key{"events"})
	assert.Equal(t, 1, c.Len())

	before := calls.Load()
	_, _ = Fetch(ctx, c, Key{"users"}, fetch)
	assert.Equal(t, before, calls.Load(), "unrelated keys stay cached")
}

func TestConcurrentReadsShareOneRequest(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "events", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, Key{"events"}, fetch)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "events", v)
	}
}

func TestInvalidateDuringFetchDiscardsResult(t *testing.T) {
	c := New()
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(context.Context) (int32, error) {
		n := calls.Add(1)
		if n == 1 {
			close(started)
			<-release
		}
		return n, nil
	}

	done := make(chan int32)
	go func() {
		v, _ := Fetch(context.Background(), c, Key{"checkins", "1"}, fetch)
		done <- v
	}()
	<-started
	c.Invalidate(Key{"checkins"})
	close(release)
	assert.Equal(t, int32(1), <-done)

	v, err := Fetch(context.Background(), c, Key{"checkins", "1"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v, "stale result was not cached")
}
