package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/secondary"
)

const keyPrefix = "judge:ratelimit:"

var _ secondary.RateLimiter = (*RateLimiter)(nil)

// RateLimiter implements a fixed window counter with Redis
type RateLimiter struct {
	redisClient *redis.Client
	timeout     time.Duration
	logger      primary.Logger
}

func NewRateLimiter(redisClient *redis.Client, timeout time.Duration, logger primary.Logger) *RateLimiter {
	return &RateLimiter{
		redisClient: redisClient,
		timeout:     timeout,
		logger:      logger,
	}
}

// Allow increments the window counter for key. The first hit in a window sets its expiry.
func (r *RateLimiter) Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	if max <= 0 {
		return true, nil
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	redisKey := keyPrefix + key
	count, err := r.redisClient.Incr(ctx, redisKey).Result()
	if err != nil {
		r.logger.Error("Failed to check rate limit", "key", key, "error", err)
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if count == 1 {
		if err := r.redisClient.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	} else if ttl, err := r.redisClient.TTL(ctx, redisKey).Result(); err == nil && ttl < 0 {
		// a counter without a window would never reset
		_ = r.redisClient.Expire(ctx, redisKey, window).Err()
	}

	if count > int64(max) {
		r.logger.Warn("Rate limit exceeded", "key", key, "count", count, "max", max)
		return false, nil
	}
	return true, nil
}
