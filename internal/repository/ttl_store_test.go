package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryTTLStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "wc:abc", []byte(`{"x":1}`)))

	val, err := store.Get(ctx, "wc:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":1}`), val)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryTTLStore(time.Minute)

	val, err := store.Get(context.Background(), "wc:nope")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryTTLStore(50 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "wc:abc", []byte("v")))
	time.Sleep(100 * time.Millisecond)

	val, err := store.Get(ctx, "wc:abc")
	require.NoError(t, err)
	assert.Nil(t, val, "read after TTL must behave as if the key never existed")
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryTTLStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("one")))
	require.NoError(t, store.Set(ctx, "k", []byte("two")))

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), val)
}

func newRedisStore(t *testing.T, ttl time.Duration) (TTLStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisTTLStore(client, ttl), mr
}

func TestRedisStoreSetGet(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "xumm:abc", []byte(`{"opened":true}`)))

	val, err := store.Get(ctx, "xumm:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"opened":true}`), val)
}

func TestRedisStoreMissingKey(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)

	val, err := store.Get(context.Background(), "xumm:nope")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Second)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "rl:1:client", []byte("1")))
	mr.FastForward(2 * time.Second)

	val, err := store.Get(ctx, "rl:1:client")
	require.NoError(t, err)
	assert.Nil(t, val)
}
