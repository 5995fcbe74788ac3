package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c, err := NewWithClient(client, DefaultConfig())
	require.NoError(t, err)
	return c
}

func TestCacheSetThenGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "config/app.toml", []byte(`{"name":"demo"}`)))

	got, err := c.Get(ctx, "config/app.toml")
	require.NoError(t, err)
	require.Equal(t, `{"name":"demo"}`, string(got))
}

func TestCacheGetMiss(t *testing.T) {
	c := newTestCache(t)
	_, err := c.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrMiss)
}

func TestCacheInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	require.NoError(t, c.Invalidate(ctx, "k"))
	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)
}
