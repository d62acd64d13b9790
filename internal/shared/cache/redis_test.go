package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orghub/server/internal/shared/config"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("disabled_without_address", func(t *testing.T) {
		client, err := NewRedisClient(&config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, client)
		assert.NoError(t, Close(client))
	})

	t.Run("unreachable", func(t *testing.T) {
		client, err := NewRedisClient(&config.RedisConfig{Address: "127.0.0.1:1"})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}
