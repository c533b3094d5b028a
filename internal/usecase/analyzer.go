package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"TermPulse/internal/domain/models"
	domrepo "TermPulse/internal/domain/repository"
	"TermPulse/internal/service/openinterest"
	"TermPulse/internal/service/quote"
	xlogger "TermPulse/pkg/logger"
	"TermPulse/pkg/metrics"
)

// Analyzer orchestrates quote fetching, classification and optional
// publication of the result.
type Analyzer struct {
	fetcher   *quote.Fetcher
	oi        openinterest.Source
	publisher domrepo.Publisher
	recorder  *metrics.Recorder
	logger    *xlogger.Logger
}

// NewAnalyzer creates an Analyzer. publisher may be nil.
func NewAnalyzer(fetcher *quote.Fetcher, oi openinterest.Source, publisher domrepo.Publisher, recorder *metrics.Recorder, logger *xlogger.Logger) *Analyzer {
	return &Analyzer{
		fetcher:   fetcher,
		oi:        oi,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
	}
}

// Analyze runs the exhaustion analysis for one pair of contracts.
func (a *Analyzer) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.Analysis, error) {
	start := time.Now()

	front := a.fetcher.Fetch(ctx, req.TickerFront)
	next := a.fetcher.Fetch(ctx, req.TickerNext)

	oiChange, err := a.oi.Change(ctx, req.TickerFront)
	if err != nil {
		return nil, fmt.Errorf("open interest lookup: %w", err)
	}

	outcome := Classify(front.Price, next.Price, req.PhysicalDemand, req.PriceBreakout, oiChange)

	spread := next.Price - front.Price
	var percentage float64
	if front.Price != 0 {
		percentage = spread / front.Price * 100
	}

	result := &models.Analysis{
		Signal:          outcome.Signal,
		Reasons:         outcome.Reasons,
		Recommendations: outcome.Recommendations,
		Prices: models.ContractPrices{
			FrontContract:      front.Price,
			NextContract:       next.Price,
			ContangoSpread:     fmt.Sprintf("$%.2f", spread),
			ContangoPercentage: fmt.Sprintf("%.2f%%", percentage),
		},
		MarketCondition:   outcome.MarketCondition,
		TermStructure:     outcome.Slope,
		ConfidenceScore:   outcome.ConfidenceScore,
		AnalysisTimestamp: time.Now().Format(time.RFC3339),
	}

	a.recorder.RecordAnalysis(outcome.Signal)
	a.recorder.RecordLatency("analyze", time.Since(start).Seconds())

	a.logger.Info("market analyzed",
		xlogger.String("front", req.TickerFront),
		xlogger.String("next", req.TickerNext),
		xlogger.String("signal", outcome.Signal),
		xlogger.Bool("front_fallback", front.Fallback),
		xlogger.Bool("next_fallback", next.Fallback),
	)

	a.publish(ctx, req.TickerFront, result)

	return result, nil
}

// publish forwards the analysis to the configured sink. Failures are logged
// and never surfaced to the HTTP caller.
func (a *Analyzer) publish(ctx context.Context, key string, result *models.Analysis) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishAnalysis(ctx, key, result); err != nil {
		a.logger.Warn("analysis publish failed", xlogger.String("key", key), xlogger.Error(err))
	}
}

// TermStructure fetches each contract along the curve and reports contango
// metrics between adjacent pairs.
func (a *Analyzer) TermStructure(ctx context.Context, tickers []string) (*models.TermStructure, error) {
	if len(tickers) < 2 {
		return nil, fmt.Errorf("term structure needs at least 2 tickers, got %d", len(tickers))
	}

	start := time.Now()
	contracts := make([]models.ContractQuote, 0, len(tickers))
	for _, t := range tickers {
		q := a.fetcher.Fetch(ctx, t)
		contracts = append(contracts, models.ContractQuote{
			Ticker:   q.Ticker,
			Price:    q.Price,
			Fallback: q.Fallback,
		})
	}

	pairs := make([]models.ContangoMetrics, 0, len(contracts)-1)
	for i := 0; i+1 < len(contracts); i++ {
		pairs = append(pairs, ContangoMetrics(contracts[i].Price, contracts[i+1].Price))
	}

	a.recorder.RecordLatency("term_structure", time.Since(start).Seconds())

	return &models.TermStructure{
		Contracts: contracts,
		Pairs:     pairs,
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

// Tickers fetches current prices for a list of symbols.
func (a *Analyzer) Tickers(ctx context.Context, symbols []string) []models.ContractQuote {
	rows := make([]models.ContractQuote, 0, len(symbols))
	for _, s := range symbols {
		q := a.fetcher.Fetch(ctx, s)
		rows = append(rows, models.ContractQuote{
			Ticker:   q.Ticker,
			Price:    q.Price,
			Fallback: q.Fallback,
		})
	}
	return rows
}

// SplitTickers parses a comma separated ticker list, dropping empty items.
func SplitTickers(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
