package models

// Signal wire values, kept stable for API consumers.
const (
	SignalBearishExhaustion = "BEARISH — Potential exhaustion"
	SignalNeutralOrBullish  = "NEUTRAL or BULLISH — No exhaustion confirmed"
)

// Physical demand trend labels.
const (
	DemandDeclining = "declining"
	DemandStable    = "stable"
	DemandRising    = "rising"
)

// Contango slope labels. The classifier only distinguishes steep_upward
// from mild; the term-structure scan uses the full five-level scale.
const (
	SlopeSteepUpward   = "steep_upward"
	SlopeMild          = "mild"
	SlopeMildUpward    = "mild_upward"
	SlopeFlat          = "flat"
	SlopeMildDownward  = "mild_downward"
	SlopeSteepDownward = "steep_downward"
)

// Market condition labels attached to analysis results.
const (
	ConditionExhaustion = "Exhaustion"
	ConditionUncertain  = "Uncertain"
)

// Quote is the result of one price fetch. Fallback marks that the provider
// failed or returned no usable price and the configured default was used.
type Quote struct {
	Ticker   string  `json:"ticker"`
	Price    float64 `json:"price"`
	Fallback bool    `json:"fallback"`
	Source   string  `json:"source"`
}

// ContractPrices carries both contract prices plus derived contango figures.
type ContractPrices struct {
	FrontContract      float64 `json:"front_contract"`
	NextContract       float64 `json:"next_contract"`
	ContangoSpread     string  `json:"contango_spread"`
	ContangoPercentage string  `json:"contango_percentage"`
}

// Analysis is the full market analysis returned to callers.
type Analysis struct {
	Signal            string         `json:"signal"`
	Reasons           []string       `json:"reasons"`
	Recommendations   []string       `json:"recommendations"`
	Prices            ContractPrices `json:"prices"`
	MarketCondition   string         `json:"market_condition,omitempty"`
	TermStructure     string         `json:"term_structure,omitempty"`
	ConfidenceScore   int            `json:"confidence_score,omitempty"`
	AnalysisTimestamp string         `json:"analysis_timestamp"`
}

// ContangoMetrics describes the relation between two adjacent contracts.
type ContangoMetrics struct {
	Spread     float64 `json:"spread"`
	Percentage float64 `json:"percentage"`
	Slope      string  `json:"slope"`
}

// ContractQuote is one row of a term-structure or ticker scan.
type ContractQuote struct {
	Ticker   string  `json:"ticker"`
	Price    float64 `json:"price"`
	Fallback bool    `json:"fallback"`
}

// TermStructure reports contract prices along the curve and the contango
// metrics between each adjacent pair.
type TermStructure struct {
	Contracts []ContractQuote   `json:"contracts"`
	Pairs     []ContangoMetrics `json:"pairs"`
	Timestamp string            `json:"timestamp"`
}
