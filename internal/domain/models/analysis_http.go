package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	TickerFront    string `json:"ticker_front" validate:"required"`
	TickerNext     string `json:"ticker_next" validate:"required"`
	PhysicalDemand string `json:"physical_demand" validate:"required,oneof=declining stable rising"`
	PriceBreakout  bool   `json:"price_breakout"`
}

type TermStructureRequest struct {
	Tickers string `query:"tickers" json:"tickers" default:"GC=F,GCM24.CMX,GCQ24.CMX" validate:"required"`
}

type TickersRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=25,dive,required"`
}
