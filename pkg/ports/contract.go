package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRateLimiterContract runs a suite of tests to verify that a
// RateLimiter implementation adheres to the interface contract. The
// limiter under test must be configured with the given per-window
// limit.
func RunRateLimiterContract(t *testing.T, limiter RateLimiter, limit int) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405.000")

	t.Run("Allows Up To Limit", func(t *testing.T) {
		for i := 0; i < limit; i++ {
			ok, err := limiter.Allow(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok, "attempt %d should be allowed", i+1)
		}
	})

	t.Run("Denies Over Limit", func(t *testing.T) {
		ok, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		ok, err := limiter.Allow(ctx, key+"-other")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
