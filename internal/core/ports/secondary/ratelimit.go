package secondary

import (
	"context"
	"time"
)

type RateLimiter interface {
	// Allow counts one hit on key inside a fixed window and reports whether it is within max
	Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}
