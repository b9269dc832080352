package dash

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheTake(t *testing.T) {
	var (
		ctx   = context.Background()
		cache = NewMemoryCache()
	)
	require.NoError(t, cache.Set(ctx, "key", []byte("value"), 0))

	got, ok, err := cache.Take(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	_, ok, err = cache.Take(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	var (
		ctx   = context.Background()
		cache = NewMemoryCache()
		now   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	)
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.Set(ctx, "key", []byte("value"), time.Minute))

	now = now.Add(2 * time.Minute)
	_, ok, err := cache.Take(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cache := NewMemoryCache()
	assert.ErrorIs(t, cache.Set(ctx, "key", nil, 0), context.Canceled)
	_, _, err := cache.Take(ctx, "key")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisOptions{
		Addr:    "127.0.0.1:1",
		Timeout: 100 * time.Millisecond,
	})
	assert.ErrorIs(t, err, ErrCache)
}

func TestTransfer(t *testing.T) {
	var (
		ctx = context.Background()
		src = countingSource{snap: testSnapshot()}
		tr  = Transfer{Source: &src, Cache: NewMemoryCache(), TTL: time.Minute}
	)
	snap, err := tr.Prerender(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), snap)
	assert.Equal(t, int32(1), src.calls.Load())

	snap, err = tr.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), snap)
	assert.Equal(t, int32(1), src.calls.Load())

	_, ok, err := tr.Consume(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = tr.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestTransferSourceError(t *testing.T) {
	var (
		ctx   = context.Background()
		cause = errors.New("boom")
		tr    = Transfer{Source: &countingSource{err: cause}, Cache: NewMemoryCache()}
	)
	_, err := tr.Prerender(ctx)
	assert.ErrorIs(t, err, cause)

	_, ok, err := tr.Consume(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
