package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func limiters(t *testing.T) map[string]RateLimiter {
	return map[string]RateLimiter{
		"redis":  NewRedisRateLimiter(setupTestRedis(t)),
		"memory": NewMemoryRateLimiter(),
	}
}

func TestRateLimiter_Allow_PerMinute(t *testing.T) {
	for name, limiter := range limiters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			config := RateLimitConfig{RequestsPerMinute: 5}

			for i := 0; i < 5; i++ {
				allowed, err := limiter.Allow(ctx, "login:1.2.3.4", config)
				require.NoError(t, err)
				assert.True(t, allowed, "request %d should be allowed", i+1)
			}

			allowed, err := limiter.Allow(ctx, "login:1.2.3.4", config)
			require.NoError(t, err)
			assert.False(t, allowed, "6th request should be denied")

			allowed, err = limiter.Allow(ctx, "login:5.6.7.8", config)
			require.NoError(t, err)
			assert.True(t, allowed, "other keys are independent")
		})
	}
}

func TestRateLimiter_ResetAndRemaining(t *testing.T) {
	for name, limiter := range limiters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			config := RateLimitConfig{RequestsPerMinute: 3}

			for i := 0; i < 2; i++ {
				_, err := limiter.Allow(ctx, "k", config)
				require.NoError(t, err)
			}

			remaining, err := limiter.GetRemaining(ctx, "k", time.Minute, 3)
			require.NoError(t, err)
			assert.Equal(t, int64(1), remaining)

			require.NoError(t, limiter.Reset(ctx, "k"))

			remaining, err = limiter.GetRemaining(ctx, "k", time.Minute, 3)
			require.NoError(t, err)
			assert.Equal(t, int64(3), remaining)
		})
	}
}

func TestMemoryRateLimiter_WindowSlides(t *testing.T) {
	l := NewMemoryRateLimiter()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 1}

	allowed, _ := l.Allow(ctx, "k", config)
	assert.True(t, allowed)
	allowed, _ = l.Allow(ctx, "k", config)
	assert.False(t, allowed)

	now = now.Add(61 * time.Second)
	allowed, _ = l.Allow(ctx, "k", config)
	assert.True(t, allowed)
}
