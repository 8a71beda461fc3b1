package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RankingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewClient(context.Background(), Config{Addr: mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRankingCache(rdb, ttl), mr
}

func TestRankingCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	var miss []domain.TagCount
	ok, err := cache.Get(ctx, "rankings:tags", &miss)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []domain.TagCount{{Tag: "Wifi", Count: 2}}
	require.NoError(t, cache.Set(ctx, "rankings:tags", want))

	var got []domain.TagCount
	ok, err = cache.Get(ctx, "rankings:tags", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, cache.Invalidate(ctx, "rankings:tags", "rankings:top"))
	ok, err = cache.Get(ctx, "rankings:tags", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRankingCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "rankings:top", []domain.RankedStore{}))
	mr.FastForward(2 * time.Minute)

	var got []domain.RankedStore
	ok, err := cache.Get(ctx, "rankings:top", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRankingCache_CorruptValue(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(keyPrefix+"rankings:tags", "{not json"))

	var got []domain.TagCount
	_, err := cache.Get(context.Background(), "rankings:tags", &got)
	assert.Error(t, err)
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Addr: "127.0.0.1:1"}, zap.NewNop())
	assert.Error(t, err)
}
