package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstsync/internal/config"
)

func TestHSNKey(t *testing.T) {
	assert.Equal(t, "gstsync:hsn:demo.myshop.com:7001", hsnKey("demo.myshop.com", "7001"))
}

func TestHSNCache_NilClientAlwaysMisses(t *testing.T) {
	c := NewHSNCache(nil)

	require.NoError(t, c.Set(context.Background(), "s", "p", "6109", time.Hour))

	code, found, err := c.Get(context.Background(), "s", "p")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, code)
}

func TestNewRedisClient_EmptyAddrDisablesCache(t *testing.T) {
	assert.Nil(t, NewRedisClient(&config.RedisConfig{}))
}

func TestHSNCache_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewHSNCache(client)

	_, found, err := c.Get(context.Background(), "s", "p")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Error(t, c.Set(context.Background(), "s", "p", "", time.Hour))
}
