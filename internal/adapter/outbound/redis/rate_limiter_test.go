package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient connects to ORGHUB_TEST_REDIS_ADDR or skips.
func newTestClient(t *testing.T) redis.UniversalClient {
	t.Helper()
	addr := os.Getenv("ORGHUB_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ORGHUB_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRateLimiter(t *testing.T) {
	client := newTestClient(t)
	limiter := NewRateLimiter(client)
	ctx := context.Background()

	t.Run("allows_up_to_limit", func(t *testing.T) {
		key := "test:" + uuid.NewString()

		for i := 0; i < 3; i++ {
			ok, err := limiter.Allow(ctx, key, 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, ok)
		}

		ok, err := limiter.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		remaining, err := limiter.GetRemaining(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("window_slides", func(t *testing.T) {
		key := "test:" + uuid.NewString()

		ok, err := limiter.Allow(ctx, key, 1, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, ok)

		time.Sleep(80 * time.Millisecond)

		ok, err = limiter.Allow(ctx, key, 1, 50*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("remaining_for_unused_key", func(t *testing.T) {
		remaining, err := limiter.GetRemaining(ctx, "test:"+uuid.NewString(), 5, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 5, remaining)
	})
}

func TestRateLimiter_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	_, err := NewRateLimiter(client).Allow(context.Background(), "k", 1, time.Second)
	assert.Error(t, err)
}
