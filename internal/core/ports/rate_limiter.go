package ports

import "context"

// RateLimiter counts actions per key in a shared window.
type RateLimiter interface {
	// Allow records one action for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
