package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/estate-listings/internal/config"
)

type page struct {
	Items []string
	Total int
}

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := NewRedis(context.Background(), config.RedisConfig{
		Addr: mr.Addr(),
		TTL:  time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestSetAndGet(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	want := page{Items: []string{"a", "b"}, Total: 2}
	require.NoError(t, c.Set(ctx, PathHome, 0, "page=1", want))

	var got page
	gen, found, err := c.Get(ctx, PathHome, "page=1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Zero(t, gen)
	assert.Equal(t, want, got)

	assert.True(t, mr.Exists("page:/:0:page=1"))
	assert.Equal(t, time.Minute, mr.TTL("page:/:0:page=1"))
}

func TestGetMiss(t *testing.T) {
	c, _ := setupTestCache(t)

	var got page
	_, found, err := c.Get(context.Background(), PathHome, "nothing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	c, mr := setupTestCache(t)
	require.NoError(t, mr.Set("page:/:0:bad", "not-json"))

	var got page
	_, found, err := c.Get(context.Background(), PathHome, "bad", &got)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestInvalidateDropsOnlyGivenPaths(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, PathHome, 0, "page=1", page{Total: 1}))
	require.NoError(t, c.Set(ctx, PathHome, 0, "page=2", page{Total: 1}))
	require.NoError(t, c.Set(ctx, MyListingsPath("u1"), 0, "page=1", page{Total: 1}))
	require.NoError(t, c.Set(ctx, PathManageCredits, 0, "", page{Total: 1}))

	require.NoError(t, c.Invalidate(ctx, PathHome, MyListingsPath("u1")))

	var got page
	for _, tc := range []struct{ path, key string }{
		{PathHome, "page=1"},
		{PathHome, "page=2"},
		{MyListingsPath("u1"), "page=1"},
	} {
		_, found, err := c.Get(ctx, tc.path, tc.key, &got)
		require.NoError(t, err)
		assert.False(t, found, tc.path+" "+tc.key)
	}

	_, found, err := c.Get(ctx, PathManageCredits, "", &got)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInvalidateBumpsGeneration(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Invalidate(ctx, PathHome))
	require.NoError(t, c.Invalidate(ctx, PathHome))

	var got page
	gen, found, err := c.Get(ctx, PathHome, "page=1", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(2), gen)

	v, err := mr.Get("gen:/")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

// A page read under an old generation must not land where readers of the
// new generation look.
func TestSetAfterInvalidateIsDropped(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	var got page
	gen, found, err := c.Get(ctx, PathHome, "page=1", &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Invalidate(ctx, PathHome))
	require.NoError(t, c.Set(ctx, PathHome, gen, "page=1", page{Total: 0}))

	assert.False(t, mr.Exists("page:/:0:page=1"))
	assert.False(t, mr.Exists("page:/:1:page=1"))

	_, found, err = c.Get(ctx, PathHome, "page=1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateUnknownPath(t *testing.T) {
	c, _ := setupTestCache(t)
	assert.NoError(t, c.Invalidate(context.Background(), BuyCreditPath("starter")))
}

func TestNewRedisUnreachable(t *testing.T) {
	c, err := NewRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestNopAlwaysMisses(t *testing.T) {
	var c PageCache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, PathHome, 0, "k", 1))
	var v int
	_, found, err := c.Get(ctx, PathHome, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate(ctx, PathHome))
}
