package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrplutter/gateway/internal/config"
)

func TestNewStoreDefaultsToMemory(t *testing.T) {
	store, err := NewStore(config.StoreConfig{TTLSeconds: 60})
	require.NoError(t, err)
	require.NotNil(t, store)

	_, ok := store.(*memoryTTLStore)
	assert.True(t, ok, "empty backend should select the memory store")
}

func TestNewStoreUnknownBackend(t *testing.T) {
	_, err := NewStore(config.StoreConfig{Backend: "etcd", TTLSeconds: 60})
	assert.Error(t, err)
}

func TestNewStoreRedisRequiresURL(t *testing.T) {
	_, err := NewStore(config.StoreConfig{Backend: "redis", TTLSeconds: 60})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_REDIS_URL")
}

func TestNewStoreRedisSharesClient(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.StoreConfig{
		Backend:    "redis",
		TTLSeconds: 60,
		RedisURL:   "redis://" + mr.Addr(),
	}

	first, err := NewStore(cfg)
	require.NoError(t, err)
	second, err := NewStore(cfg)
	require.NoError(t, err)

	// Both selections wrap the one cached client, so data written through
	// one is visible through the other.
	ctx := context.Background()
	require.NoError(t, first.Set(ctx, "wc:shared", []byte("v")))
	val, err := second.Get(ctx, "wc:shared")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	assert.Same(t,
		first.(*redisTTLStore).client,
		second.(*redisTTLStore).client,
	)
}
