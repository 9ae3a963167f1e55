package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per origin in a fixed rolling window backed
// by Redis. Key format: ratelimit:<origin>
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewRateLimiter creates a limiter allowing max requests per window.
func NewRateLimiter(client *redis.Client, max int64, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &RateLimiter{client: client, max: max, window: window}
}

// Allow records one request from origin and reports whether it is within
// the window budget. When the budget is exhausted, retryAfter is how long
// until the window resets.
func (l *RateLimiter) Allow(ctx context.Context, origin string) (allowed bool, retryAfter time.Duration, err error) {
	key := l.key(origin)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	if n <= l.max {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

func (l *RateLimiter) key(origin string) string {
	return "ratelimit:" + origin
}
