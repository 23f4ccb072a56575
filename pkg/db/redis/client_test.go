package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yanote/pkg/db/redis"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = mr.Host()
	cfg.Port = port

	client, err := redis.NewClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	return client, mr
}

func TestClientSetGet(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "v", 0))

	val, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestClientGetMissing(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, redis.ErrKeyNotFound)
}

func TestClientTTL(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "short", "1", time.Minute))
	ok, err := client.Exists(ctx, "short")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = client.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "a", "1", 0))
	require.NoError(t, client.Set(ctx, "b", "2", 0))
	require.NoError(t, client.Delete(ctx, "a", "b"))

	_, err := client.Get(ctx, "a")
	assert.ErrorIs(t, err, redis.ErrKeyNotFound)
}

func TestNewClientUnavailable(t *testing.T) {
	cfg := redis.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.Timeout = 100 * time.Millisecond

	client, err := redis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
}
