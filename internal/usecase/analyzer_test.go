package usecase

import (
	"context"
	"fmt"
	"testing"

	"TermPulse/internal/domain/models"
	"TermPulse/internal/service/openinterest"
	"TermPulse/internal/service/quote"
	xlogger "TermPulse/pkg/logger"
	"TermPulse/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Recorder registers in the global Prometheus registry, so one per test binary.
var testRecorder = metrics.New()

type stubProvider struct {
	prices map[string]float64
	calls  int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Price(_ context.Context, ticker string) (float64, error) {
	s.calls++
	p, ok := s.prices[ticker]
	if !ok {
		return 0, fmt.Errorf("no data for %s", ticker)
	}
	return p, nil
}

type capturePublisher struct {
	key  string
	last *models.Analysis
}

func (c *capturePublisher) PublishAnalysis(_ context.Context, key string, a *models.Analysis) error {
	c.key = key
	c.last = a
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func newTestAnalyzer(t *testing.T, provider quote.Provider, pub *capturePublisher) *Analyzer {
	t.Helper()
	fetcher := quote.NewFetcher(provider, nil, nil, testRecorder, testLogger(t), 1000, 0)
	oi := openinterest.NewStatic(openinterest.ChangeSpike)
	if pub == nil {
		return NewAnalyzer(fetcher, oi, nil, testRecorder, testLogger(t))
	}
	return NewAnalyzer(fetcher, oi, pub, testRecorder, testLogger(t))
}

func TestAnalyzeBearish(t *testing.T) {
	provider := &stubProvider{prices: map[string]float64{"GC=F": 1900.0, "GCM24.CMX": 1950.0}}
	pub := &capturePublisher{}
	a := newTestAnalyzer(t, provider, pub)

	res, err := a.Analyze(context.Background(), &models.AnalyzeRequest{
		TickerFront:    "GC=F",
		TickerNext:     "GCM24.CMX",
		PhysicalDemand: models.DemandDeclining,
		PriceBreakout:  false,
	})
	require.NoError(t, err)

	assert.Equal(t, models.SignalBearishExhaustion, res.Signal)
	assert.Contains(t, res.Reasons, "Contango widened: 1950.00 > 1900.00")
	assert.Equal(t, 1900.0, res.Prices.FrontContract)
	assert.Equal(t, 1950.0, res.Prices.NextContract)
	assert.Equal(t, "$50.00", res.Prices.ContangoSpread)
	assert.Equal(t, "2.63%", res.Prices.ContangoPercentage)
	assert.NotEmpty(t, res.AnalysisTimestamp)

	// published as-is, keyed by the front ticker
	require.NotNil(t, pub.last)
	assert.Equal(t, "GC=F", pub.key)
	assert.Equal(t, res.Signal, pub.last.Signal)
}

func TestAnalyzeFallbackPricesUnmodified(t *testing.T) {
	// provider has no data at all: both quotes fall back
	provider := &stubProvider{prices: map[string]float64{}}
	a := newTestAnalyzer(t, provider, nil)

	res, err := a.Analyze(context.Background(), &models.AnalyzeRequest{
		TickerFront:    "XX=F",
		TickerNext:     "YY=F",
		PhysicalDemand: models.DemandDeclining,
		PriceBreakout:  false,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, res.Prices.FrontContract)
	assert.Equal(t, 1000.0, res.Prices.NextContract)
	// equal fallback prices mean a mild slope, so no exhaustion
	assert.Equal(t, models.SignalNeutralOrBullish, res.Signal)
}

func TestTermStructure(t *testing.T) {
	provider := &stubProvider{prices: map[string]float64{
		"GC=F":      2000.0,
		"GCM24.CMX": 2030.0,
		"GCQ24.CMX": 2045.0,
	}}
	a := newTestAnalyzer(t, provider, nil)

	res, err := a.TermStructure(context.Background(), []string{"GC=F", "GCM24.CMX", "GCQ24.CMX"})
	require.NoError(t, err)

	require.Len(t, res.Contracts, 3)
	require.Len(t, res.Pairs, 2)
	assert.Equal(t, models.SlopeMildUpward, res.Pairs[0].Slope)
	assert.False(t, res.Contracts[0].Fallback)
}

func TestTermStructureTooFewTickers(t *testing.T) {
	a := newTestAnalyzer(t, &stubProvider{}, nil)

	_, err := a.TermStructure(context.Background(), []string{"GC=F"})
	require.Error(t, err)
}

func TestTickersFallbackRows(t *testing.T) {
	provider := &stubProvider{prices: map[string]float64{"GC=F": 2000.0}}
	a := newTestAnalyzer(t, provider, nil)

	rows := a.Tickers(context.Background(), []string{"GC=F", "NOPE"})
	require.Len(t, rows, 2)
	assert.False(t, rows[0].Fallback)
	assert.True(t, rows[1].Fallback)
	assert.Equal(t, 1000.0, rows[1].Price)
}
