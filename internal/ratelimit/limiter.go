// Package ratelimit provides the Redis-backed fixed-window limiter applied
// to login attempts.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter reports whether an action identified by key is still under its
// limit for the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts hits per key in a fixed window using INCR + EXPIRE.
// Redis failures fail open so a limiter outage cannot lock everyone out.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRedisLimiter returns a limiter allowing limit hits per window per key.
// Returns nil when client is nil or limit is zero; a nil limiter allows
// everything.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RedisLimiter {
	if client == nil || limit <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow increments the window counter for key and reports whether the hit
// is within the limit. The expiry is set on every hit so a key never
// lingers past its window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, "ratelimit:"+key)
		pipe.Expire(ctx, "ratelimit:"+key, l.window)
		return nil
	})
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return true, nil
	}
	return incr.Val() <= int64(l.limit), nil
}
