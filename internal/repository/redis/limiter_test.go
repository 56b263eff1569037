package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memCounter struct {
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newMemCounter() *memCounter {
	return &memCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestCallLimiterWindow(t *testing.T) {
	store := newMemCounter()
	now := time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC)
	l := &CallLimiter{store: store, max: 2, window: time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		ok, err := l.Allow(ctx)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if ok != want {
			t.Fatalf("call %d: expected %v, got %v", i, want, ok)
		}
	}
	if len(store.expires) != 1 {
		t.Fatalf("expiry should be set once per window, got %v", store.expires)
	}

	now = now.Add(time.Minute)
	if ok, _ := l.Allow(ctx); !ok {
		t.Fatalf("new window should allow calls again")
	}
}

func TestCallLimiterUnlimited(t *testing.T) {
	store := newMemCounter()
	l := &CallLimiter{store: store, max: 0, window: time.Minute, now: time.Now}
	for i := 0; i < 5; i++ {
		if ok, err := l.Allow(context.Background()); !ok || err != nil {
			t.Fatalf("unlimited limiter denied call %d: %v", i, err)
		}
	}
	if len(store.counts) != 0 {
		t.Fatalf("unlimited limiter must not touch redis")
	}
}

func TestCallLimiterStoreError(t *testing.T) {
	store := newMemCounter()
	store.err = errors.New("connection refused")
	l := &CallLimiter{store: store, max: 1, window: time.Minute, now: time.Now}
	if _, err := l.Allow(context.Background()); err == nil {
		t.Fatalf("expected error from store")
	}
}
