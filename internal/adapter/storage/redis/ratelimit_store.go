package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimitStore implements a fixed-window rate limit counter backed by
// Redis, keyed per merchant/IP and per endpoint group (see
// middleware.DefaultRateLimitRules).
type RateLimitStore struct {
	client    *goredis.Client
	keyPrefix string
}

// NewRateLimitStore creates a new Redis-backed rate limit store.
func NewRateLimitStore(client *goredis.Client) *RateLimitStore {
	return &RateLimitStore{
		client:    client,
		keyPrefix: "ratelimit:",
	}
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// windowKey builds the Redis key for the discrete window a request falls
// into: INCR/EXPIRE operate per-window, so two callers sharing a key in
// the same window share a counter and two windows never collide.
func (s *RateLimitStore) windowKey(key string, window time.Duration, now time.Time) (redisKey string, windowID int64) {
	windowID = now.Unix() / int64(window.Seconds())
	redisKey = fmt.Sprintf("%s%s:%d", s.keyPrefix, key, windowID)
	return redisKey, windowID
}

// Allow checks whether a request identified by key is within limit for
// the given window, using an INCR+EXPIRE fixed-window counter.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	redisKey, windowID := s.windowKey(key, window, time.Now())

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis rate limit incr: %w", err)
	}

	// Expiry only needs setting on the window's first increment.
	if count == 1 {
		s.client.Expire(ctx, redisKey, window+time.Second) // +1s safety margin
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * int64(window.Seconds()),
	}, nil
}
