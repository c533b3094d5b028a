package usecase

import (
	"testing"

	"TermPulse/internal/domain/models"
	"TermPulse/internal/service/openinterest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBearishExhaustion(t *testing.T) {
	out := Classify(1900.0, 1950.0, models.DemandDeclining, false, openinterest.ChangeSpike)

	require.Equal(t, models.SignalBearishExhaustion, out.Signal)
	assert.Equal(t, models.SlopeSteepUpward, out.Slope)
	assert.Equal(t, models.ConditionExhaustion, out.MarketCondition)
	assert.Equal(t, 75, out.ConfidenceScore)
	assert.Contains(t, out.Reasons, "Contango widened: 1950.00 > 1900.00")
	assert.Contains(t, out.Reasons, "Open interest spike")
	assert.Contains(t, out.Reasons, "Price stalling (no breakout)")
	assert.Contains(t, out.Reasons, "Physical demand declining")
	assert.Len(t, out.Recommendations, 3)
}

func TestClassifyBreakoutAlwaysNeutral(t *testing.T) {
	for _, demand := range []string{models.DemandDeclining, models.DemandStable, models.DemandRising} {
		out := Classify(1900.0, 1950.0, demand, true, openinterest.ChangeSpike)
		assert.Equal(t, models.SignalNeutralOrBullish, out.Signal, "demand=%s", demand)
	}
}

func TestClassifyMildSlopeNeutral(t *testing.T) {
	// spread of exactly 5 is not steep
	out := Classify(1900.0, 1905.0, models.DemandDeclining, false, openinterest.ChangeSpike)

	require.Equal(t, models.SignalNeutralOrBullish, out.Signal)
	assert.Equal(t, models.SlopeMild, out.Slope)
	assert.Equal(t, models.ConditionUncertain, out.MarketCondition)
	assert.Equal(t, 40, out.ConfidenceScore)
	assert.Contains(t, out.Reasons, "Current market conditions: declining physical demand")
	assert.Contains(t, out.Reasons, "Price breakout: No")
	assert.Contains(t, out.Reasons, "Term structure: mild")
}

func TestClassifyNoSpikeNeutral(t *testing.T) {
	out := Classify(1900.0, 1950.0, models.DemandDeclining, false, openinterest.ChangeStable)
	assert.Equal(t, models.SignalNeutralOrBullish, out.Signal)
}

func TestClassifySlope(t *testing.T) {
	assert.Equal(t, models.SlopeSteepUpward, ClassifySlope(1900.0, 1905.01))
	assert.Equal(t, models.SlopeMild, ClassifySlope(1900.0, 1905.0))
	assert.Equal(t, models.SlopeMild, ClassifySlope(1950.0, 1900.0))
}

func TestContangoMetrics(t *testing.T) {
	cases := []struct {
		name  string
		front float64
		next  float64
		slope string
	}{
		{"steep upward", 1000, 1030, models.SlopeSteepUpward},
		{"mild upward", 1000, 1010, models.SlopeMildUpward},
		{"flat", 1000, 1001, models.SlopeFlat},
		{"mild downward", 1000, 990, models.SlopeMildDownward},
		{"steep downward", 1000, 970, models.SlopeSteepDownward},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ContangoMetrics(tc.front, tc.next)
			assert.Equal(t, tc.slope, m.Slope)
			assert.InDelta(t, tc.next-tc.front, m.Spread, 1e-9)
		})
	}
}

func TestContangoMetricsZeroFront(t *testing.T) {
	m := ContangoMetrics(0, 100)
	assert.Equal(t, models.SlopeFlat, m.Slope)
	assert.Zero(t, m.Percentage)
}

func TestSplitTickers(t *testing.T) {
	assert.Equal(t, []string{"GC=F", "GCM24.CMX"}, SplitTickers("GC=F, GCM24.CMX,"))
	assert.Empty(t, SplitTickers(" , "))
}
