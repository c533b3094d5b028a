package quote

import (
	"context"
	"fmt"
	"net/url"
	"time"

	xhttp "TermPulse/pkg/http"
)

// YahooProvider implements Provider using the Yahoo Finance chart API.
type YahooProvider struct {
	baseURL string
	client  *xhttp.Client
}

// NewYahooProvider creates a Yahoo Finance quote provider.
func NewYahooProvider(baseURL string, timeout time.Duration) *YahooProvider {
	return &YahooProvider{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Price fetches the latest close (or regular market price) for ticker.
func (p *YahooProvider) Price(ctx context.Context, ticker string) (float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", p.baseURL, url.PathEscape(ticker))

	var chart yahooChart
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {"1d"},
		},
	}, &chart)
	if err != nil {
		return 0, fmt.Errorf("yahoo fetch %s: %w", ticker, err)
	}

	if chart.Chart.Error != nil {
		return 0, fmt.Errorf("yahoo api error for %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return 0, fmt.Errorf("yahoo: no data for %s", ticker)
	}

	result := chart.Chart.Result[0]

	// Prefer the last non-null close; meta price covers tickers with sparse bars.
	for _, q := range result.Indicators.Quote {
		for i := len(q.Close) - 1; i >= 0; i-- {
			if q.Close[i] != nil {
				return *q.Close[i], nil
			}
		}
	}
	if result.Meta.RegularMarketPrice > 0 {
		return result.Meta.RegularMarketPrice, nil
	}

	return 0, fmt.Errorf("yahoo: price unavailable for %s", ticker)
}
