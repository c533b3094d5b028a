package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes application metrics via Prometheus.
type Recorder struct {
	quoteFetches   *prometheus.CounterVec
	quoteFallbacks *prometheus.CounterVec
	analyses       *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		quoteFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termpulse_quote_fetches_total",
				Help: "Total number of quote fetches by source",
			},
			[]string{"source"},
		),
		quoteFallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termpulse_quote_fallbacks_total",
				Help: "Total number of quote fetches that used the fallback price",
			},
			[]string{"ticker"},
		),
		analyses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termpulse_analyses_total",
				Help: "Total number of market analyses by signal outcome",
			},
			[]string{"signal"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "termpulse_last_price",
				Help: "Last fetched price for a ticker",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordQuoteFetch records a quote fetch from a source (cache, stream, rest).
func (r *Recorder) RecordQuoteFetch(source string) {
	r.quoteFetches.WithLabelValues(source).Inc()
}

// RecordQuoteFallback records a fallback price substitution.
func (r *Recorder) RecordQuoteFallback(ticker string) {
	r.quoteFallbacks.WithLabelValues(ticker).Inc()
}

// RecordAnalysis records a completed analysis by signal.
func (r *Recorder) RecordAnalysis(signal string) {
	r.analyses.WithLabelValues(signal).Inc()
}

// RecordLastPrice records the last fetched price for a ticker.
func (r *Recorder) RecordLastPrice(ticker string, price float64) {
	r.lastPrice.WithLabelValues(ticker).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
