package quote

import "context"

// Provider retrieves the current price for a ticker from an external source.
type Provider interface {
	Price(ctx context.Context, ticker string) (float64, error)
	Name() string
}

// LivePrices supplies last prices maintained by a streaming feed.
type LivePrices interface {
	LastPrice(ticker string) (float64, bool)
}
