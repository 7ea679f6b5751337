// Package redis implements the login rate limiter on Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Limiter implements ports.RateLimiter with a fixed window per key
// (INCR + EXPIRE). State lives entirely in Redis, so multiple app
// instances share one budget.
type Limiter struct {
	client *backend.Client
	prefix string
	limit  int
	window time.Duration
}

type Option func(*Limiter)

// WithPrefix sets the key prefix for limiter entries.
func WithPrefix(prefix string) Option {
	return func(l *Limiter) {
		l.prefix = prefix
	}
}

// WithLimit sets the allowed attempts per window.
func WithLimit(limit int, window time.Duration) Option {
	return func(l *Limiter) {
		l.limit = limit
		l.window = window
	}
}

// New creates a limiter with its own Redis client.
func New(address, password string, db int, opts ...Option) *Limiter {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a limiter from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Limiter {
	l := &Limiter{
		client: client,
		prefix: "curio:limit:",
		limit:  10,
		window: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) key(k string) string {
	return l.prefix + k
}

// Allow records one attempt and reports whether it is within the
// window's budget. The window starts on the first attempt and expires
// as a whole (fixed window, not sliding).
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.client.Pipeline()
	count := pipe.Incr(ctx, l.key(key))
	// NX keeps the window anchored at the first attempt.
	pipe.ExpireNX(ctx, l.key(key), l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record attempt: %w", err)
	}
	return count.Val() <= int64(l.limit), nil
}

// Ping verifies connectivity at startup.
func (l *Limiter) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}
