// Package ratelimit counts actions per key in fixed windows shared through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "foodshare:ratelimit:"

// RedisLimiter allows up to limit actions per key in each window. When Redis
// is unreachable it lets the action through and returns the error so the
// caller can log it.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) (*RedisLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	return &RedisLimiter{client: client, limit: int64(limit), window: window}, nil
}

// Allow creates the window key with its TTL and increments it in one
// MULTI/EXEC, so a counter never exists without an expiry.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := keyPrefix + key

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, redisKey, 0, l.window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("count %s: %w", redisKey, err)
	}
	return incr.Val() <= l.limit, nil
}
