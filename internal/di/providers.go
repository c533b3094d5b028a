package di

import (
	"fmt"

	"TermPulse/internal/handler/api"
	domrepo "TermPulse/internal/domain/repository"
	internalrepo "TermPulse/internal/repository"
	"TermPulse/internal/service/openinterest"
	"TermPulse/internal/service/quote"
	"TermPulse/internal/service/stream"
	"TermPulse/internal/usecase"
	"TermPulse/pkg/cache"
	"TermPulse/pkg/config"
	xhttp "TermPulse/pkg/http"
	pkgkafka "TermPulse/pkg/kafka"
	applogger "TermPulse/pkg/logger"
	"TermPulse/pkg/metrics"
	"TermPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideCache creates the quote cache: in-memory always, layered over
// Redis when enabled.
func ProvideCache(cfg *config.Config) (cache.Store, error) {
	local := cache.NewMemoryCache()
	if !cfg.Cache.Redis.Enabled {
		return cache.NewLayeredCache(local, nil), nil
	}

	remote, err := cache.NewRedisCache(&cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(local, remote), nil
}

// ProvideStream creates the Finnhub live price stream, or nil when disabled.
func ProvideStream(cfg *config.Config, logger *applogger.Logger) *stream.Finnhub {
	if !cfg.Stream.Enabled {
		return nil
	}
	return stream.NewFinnhub(
		cfg.Stream.APIKey,
		cfg.Stream.WebSocketURL,
		cfg.Stream.Symbols,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
		cfg.Stream.MaxAge,
		logger,
	)
}

// ProvideQuoteProvider creates the Yahoo Finance REST provider.
func ProvideQuoteProvider(cfg *config.Config) quote.Provider {
	return quote.NewYahooProvider(cfg.Quotes.BaseURL, cfg.Quotes.Timeout)
}

// ProvideFetcher creates the price fetcher with fallback.
func ProvideFetcher(cfg *config.Config, provider quote.Provider, store cache.Store, st *stream.Finnhub, recorder *metrics.Recorder, logger *applogger.Logger) *quote.Fetcher {
	var live quote.LivePrices
	if st != nil {
		live = st
	}
	return quote.NewFetcher(provider, store, live, recorder, logger, cfg.Quotes.FallbackPrice, cfg.Quotes.CacheTTL)
}

// ProvideOpenInterest creates the open-interest source. No real feed is
// wired yet, so it always reports a spike.
func ProvideOpenInterest() openinterest.Source {
	return openinterest.NewStatic(openinterest.ChangeSpike)
}

// ProvidePublisher creates the Kafka analysis publisher, or nil when disabled.
func ProvidePublisher(cfg *config.Config) (domrepo.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideAnalyzer creates the analysis use case.
func ProvideAnalyzer(fetcher *quote.Fetcher, oi openinterest.Source, publisher domrepo.Publisher, recorder *metrics.Recorder, logger *applogger.Logger) *usecase.Analyzer {
	return usecase.NewAnalyzer(fetcher, oi, publisher, recorder, logger)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(cfg *config.Config, logger *applogger.Logger, analyzer *usecase.Analyzer) xhttp.Handler {
	return api.NewAnalysisHandler(logger, analyzer, api.RateLimitConfig{
		Enabled:      cfg.RateLimit.Enabled,
		Capacity:     cfg.RateLimit.Capacity,
		RefillPerSec: cfg.RateLimit.RefillPerSec,
	})
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, st *stream.Finnhub, publisher domrepo.Publisher, store cache.Store) *server.App {
	return server.New(cfg, logger, handler, st, publisher, store)
}
