package quote

import (
	"context"
	"errors"
	"time"

	"TermPulse/internal/domain/models"
	"TermPulse/pkg/cache"
	xlogger "TermPulse/pkg/logger"
	"TermPulse/pkg/metrics"
)

// Fetcher resolves ticker prices with a fixed fallback. It never returns an
// error: provider failures are absorbed and the configured default price is
// substituted so callers always get a usable number.
type Fetcher struct {
	provider Provider
	store    cache.Store
	live     LivePrices
	recorder *metrics.Recorder
	logger   *xlogger.Logger

	fallbackPrice float64
	cacheTTL      time.Duration
}

// NewFetcher creates a Fetcher. store and live may be nil.
func NewFetcher(provider Provider, store cache.Store, live LivePrices, recorder *metrics.Recorder, logger *xlogger.Logger, fallbackPrice float64, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		provider:      provider,
		store:         store,
		live:          live,
		recorder:      recorder,
		logger:        logger,
		fallbackPrice: fallbackPrice,
		cacheTTL:      cacheTTL,
	}
}

// FallbackPrice returns the configured default price.
func (f *Fetcher) FallbackPrice() float64 { return f.fallbackPrice }

// Fetch resolves the current price for ticker: cache, then live stream,
// then the REST provider. Any failure yields the fallback price.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) models.Quote {
	if f.store != nil {
		var cached models.Quote
		if err := f.store.Get(ctx, cacheKey(ticker), &cached); err == nil {
			f.recorder.RecordQuoteFetch("cache")
			return cached
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			f.logger.Warn("quote cache read failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		}
	}

	if f.live != nil {
		if price, ok := f.live.LastPrice(ticker); ok {
			f.recorder.RecordQuoteFetch("stream")
			f.recorder.RecordLastPrice(ticker, price)
			q := models.Quote{Ticker: ticker, Price: price, Source: "stream"}
			f.cacheQuote(ctx, q)
			return q
		}
	}

	price, err := f.provider.Price(ctx, ticker)
	if err != nil {
		f.logger.Error("price fetch failed, using fallback",
			xlogger.String("ticker", ticker),
			xlogger.Float64("fallback", f.fallbackPrice),
			xlogger.Error(err),
		)
		f.recorder.RecordQuoteFallback(ticker)
		return models.Quote{Ticker: ticker, Price: f.fallbackPrice, Fallback: true, Source: f.provider.Name()}
	}

	f.recorder.RecordQuoteFetch(f.provider.Name())
	f.recorder.RecordLastPrice(ticker, price)

	q := models.Quote{Ticker: ticker, Price: price, Source: f.provider.Name()}
	f.cacheQuote(ctx, q)
	return q
}

func (f *Fetcher) cacheQuote(ctx context.Context, q models.Quote) {
	if f.store == nil {
		return
	}
	if err := f.store.Set(ctx, cacheKey(q.Ticker), q, f.cacheTTL); err != nil {
		f.logger.Warn("quote cache write failed", xlogger.String("ticker", q.Ticker), xlogger.Error(err))
	}
}

func cacheKey(ticker string) string {
	return "quote:" + ticker
}
