package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const LIMITER_KEY_PREFIX = "gomoku:llm_calls"

// counter is the subset of redis.Cmdable used by the limiter.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// CallLimiter caps remote model calls per fixed window, shared across every
// process pointed at the same Redis.
type CallLimiter struct {
	store  counter
	max    int64
	window time.Duration
	now    func() time.Time
}

// NewCallLimiter allows max calls per window. max <= 0 disables limiting.
func NewCallLimiter(client *redis.Client, max int, window time.Duration) *CallLimiter {
	return &CallLimiter{store: client, max: int64(max), window: window, now: time.Now}
}

func (l *CallLimiter) Allow(ctx context.Context) (bool, error) {
	if l.max <= 0 {
		return true, nil
	}
	key := l.key()
	count, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count llm call: %w", err)
	}
	if count == 1 {
		if err := l.store.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set limiter window: %w", err)
		}
	}
	return count <= l.max, nil
}

func (l *CallLimiter) key() string {
	bucket := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%d", LIMITER_KEY_PREFIX, bucket)
}
