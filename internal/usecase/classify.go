package usecase

import (
	"fmt"

	"TermPulse/internal/domain/models"
	"TermPulse/internal/service/openinterest"
)

// steepSpreadThreshold is the absolute next-front spread above which the
// contango slope counts as steep.
const steepSpreadThreshold = 5.0

// Outcome is the classifier verdict before price metadata is attached.
type Outcome struct {
	Signal          string
	Reasons         []string
	Recommendations []string
	Slope           string
	MarketCondition string
	ConfidenceScore int
}

// ClassifySlope labels the contango slope from the raw price spread.
func ClassifySlope(frontPrice, nextPrice float64) string {
	if nextPrice-frontPrice > steepSpreadThreshold {
		return models.SlopeSteepUpward
	}
	return models.SlopeMild
}

// Classify applies the exhaustion rule: a steep contango slope combined with
// an open-interest spike, no price breakout and declining physical demand
// reads as bearish exhaustion. Everything else is neutral or bullish.
func Classify(frontPrice, nextPrice float64, physicalDemand string, priceBreakout bool, openInterestChange string) Outcome {
	slope := ClassifySlope(frontPrice, nextPrice)

	if slope == models.SlopeSteepUpward &&
		openInterestChange == openinterest.ChangeSpike &&
		!priceBreakout &&
		physicalDemand == models.DemandDeclining {
		return Outcome{
			Signal: models.SignalBearishExhaustion,
			Reasons: []string{
				fmt.Sprintf("Contango widened: %.2f > %.2f", nextPrice, frontPrice),
				"Open interest spike",
				"Price stalling (no breakout)",
				"Physical demand declining",
			},
			Recommendations: []string{
				"Reduce long exposure in futures or ETFs",
				"Consider bear spreads or cash",
				"Watch roll yield drag on ETFs",
			},
			Slope:           slope,
			MarketCondition: models.ConditionExhaustion,
			ConfidenceScore: 75,
		}
	}

	return Outcome{
		Signal: models.SignalNeutralOrBullish,
		Reasons: []string{
			fmt.Sprintf("Current market conditions: %s physical demand", physicalDemand),
			fmt.Sprintf("Price breakout: %s", yesNo(priceBreakout)),
			fmt.Sprintf("Term structure: %s", slope),
		},
		Recommendations: []string{
			"Continue monitoring term structure and demand",
			"Watch for changes in physical demand and inventory levels",
			"Monitor open interest for potential shifts",
		},
		Slope:           slope,
		MarketCondition: models.ConditionUncertain,
		ConfidenceScore: 40,
	}
}

// ContangoMetrics computes spread, percentage and the five-level slope label
// between two adjacent contracts.
func ContangoMetrics(frontPrice, nextPrice float64) models.ContangoMetrics {
	spread := nextPrice - frontPrice

	var percentage float64
	if frontPrice != 0 {
		percentage = spread / frontPrice * 100
	}

	slope := models.SlopeFlat
	switch {
	case percentage > 2.0:
		slope = models.SlopeSteepUpward
	case percentage > 0.5:
		slope = models.SlopeMildUpward
	case percentage < -2.0:
		slope = models.SlopeSteepDownward
	case percentage < -0.5:
		slope = models.SlopeMildDownward
	}

	return models.ContangoMetrics{
		Spread:     spread,
		Percentage: percentage,
		Slope:      slope,
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
