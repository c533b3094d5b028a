package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type quote struct {
		Ticker string  `json:"ticker"`
		Price  float64 `json:"price"`
	}

	require.NoError(t, mc.Set(ctx, "quote:GC=F", quote{Ticker: "GC=F", Price: 1912.5}, time.Minute))

	var got quote
	require.NoError(t, mc.Get(ctx, "quote:GC=F", &got))
	assert.Equal(t, "GC=F", got.Ticker)
	assert.Equal(t, 1912.5, got.Price)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	err := mc.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	assert.ErrorIs(t, mc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", 42, 0))

	var got int
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, 42, got)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, mc.Delete(ctx, "a", "b"))

	var got int
	assert.ErrorIs(t, mc.Get(ctx, "a", &got), ErrCacheMiss)
	assert.ErrorIs(t, mc.Get(ctx, "b", &got), ErrCacheMiss)
}

func TestMemoryCacheExpiredReadKeepsConcurrentWrite(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		mc.mu.Lock()
		mc.data["k"] = &memoryItem{data: []byte(`"stale"`), expireAt: time.Now().Add(-time.Minute)}
		mc.mu.Unlock()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got string
			_ = mc.Get(ctx, "k", &got)
		}()
		require.NoError(t, mc.Set(ctx, "k", "fresh", time.Minute))
		wg.Wait()

		// The reader's lazy delete of the stale entry must never remove
		// the value the writer just stored.
		var got string
		require.NoError(t, mc.Get(ctx, "k", &got))
		assert.Equal(t, "fresh", got)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	mc.maxSize = 2
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, mc.Set(ctx, "b", 2, 2*time.Minute))
	require.NoError(t, mc.Set(ctx, "c", 3, 3*time.Minute))

	var got int
	assert.ErrorIs(t, mc.Get(ctx, "a", &got), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "c", &got))
	assert.Equal(t, 3, got)
}
