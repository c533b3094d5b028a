package quote

import (
	"context"
	"errors"
	"testing"

	"TermPulse/pkg/cache"
	xlogger "TermPulse/pkg/logger"
	"TermPulse/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRecorder = metrics.New()

type fakeProvider struct {
	price float64
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Price(_ context.Context, _ string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.price, nil
}

type fakeLive struct {
	price float64
	ok    bool
}

func (f *fakeLive) LastPrice(string) (float64, bool) { return f.price, f.ok }

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func TestFetchSuccess(t *testing.T) {
	p := &fakeProvider{price: 1925.5}
	f := NewFetcher(p, nil, nil, testRecorder, testLogger(t), 1000, 0)

	q := f.Fetch(context.Background(), "GC=F")
	assert.Equal(t, 1925.5, q.Price)
	assert.False(t, q.Fallback)
	assert.Equal(t, "fake", q.Source)
}

func TestFetchFallbackOnError(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}
	f := NewFetcher(p, nil, nil, testRecorder, testLogger(t), 1000, 0)

	q := f.Fetch(context.Background(), "NOPE")
	assert.Equal(t, 1000.0, q.Price)
	assert.True(t, q.Fallback)
}

func TestFetchUsesCacheOnSecondCall(t *testing.T) {
	p := &fakeProvider{price: 2001.0}
	store := cache.NewMemoryCache()
	defer store.Close()
	f := NewFetcher(p, store, nil, testRecorder, testLogger(t), 1000, 0)

	first := f.Fetch(context.Background(), "GC=F")
	second := f.Fetch(context.Background(), "GC=F")

	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, 1, p.calls)
}

func TestFetchFallbackNotCached(t *testing.T) {
	p := &fakeProvider{err: errors.New("boom")}
	store := cache.NewMemoryCache()
	defer store.Close()
	f := NewFetcher(p, store, nil, testRecorder, testLogger(t), 1000, 0)

	f.Fetch(context.Background(), "GC=F")
	f.Fetch(context.Background(), "GC=F")

	// every call retries the provider, fallback results are never cached
	assert.Equal(t, 2, p.calls)
}

func TestFetchPrefersLiveStream(t *testing.T) {
	p := &fakeProvider{price: 2001.0}
	live := &fakeLive{price: 1999.0, ok: true}
	f := NewFetcher(p, nil, live, testRecorder, testLogger(t), 1000, 0)

	q := f.Fetch(context.Background(), "GC=F")
	assert.Equal(t, 1999.0, q.Price)
	assert.Equal(t, "stream", q.Source)
	assert.Zero(t, p.calls)
}

func TestFetchSkipsStaleStream(t *testing.T) {
	p := &fakeProvider{price: 2001.0}
	live := &fakeLive{ok: false}
	f := NewFetcher(p, nil, live, testRecorder, testLogger(t), 1000, 0)

	q := f.Fetch(context.Background(), "GC=F")
	assert.Equal(t, 2001.0, q.Price)
	assert.Equal(t, 1, p.calls)
}
