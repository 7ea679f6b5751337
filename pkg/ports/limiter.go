package ports

import "context"

// RateLimiter gates repeated attempts at a keyed action (login and
// register attempts, keyed by client address and route).
type RateLimiter interface {
	// Allow records one attempt for key and reports whether it is
	// within the limit. An infrastructure failure should be returned,
	// not silently treated as allowed or denied; the caller decides.
	Allow(ctx context.Context, key string) (bool, error)
}

// NopLimiter allows everything. Used when no limiter store is
// configured.
type NopLimiter struct{}

// Allow always admits the attempt.
func (NopLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}
