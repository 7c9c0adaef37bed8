package engine

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/aurora/internal/models"
)

// AnalyzeTechnicals classifies trend, momentum, and 52-week price position.
// Every missing input degrades to the neutral/unknown branch; the function
// never fails.
func AnalyzeTechnicals(t *models.StockTechnicals) *models.TechnicalRead {
	read := &models.TechnicalRead{
		Trend:         models.TrendNeutral,
		Momentum:      models.MomentumNeutral,
		PricePosition: models.PositionUnknown,
	}
	if t == nil {
		read.Commentary = "Technical data not available."
		return read
	}

	read.Trend = determineTrend(t)
	read.Momentum = classifyMomentum(t.RSI14)
	read.PricePosition, read.RangePercentile = classifyPricePosition(t)
	read.Commentary = technicalCommentary(read)
	return read
}

// determineTrend requires price and both long moving averages:
// bullish iff price > SMA50 > SMA200, bearish iff price < SMA50 < SMA200.
func determineTrend(t *models.StockTechnicals) models.TrendType {
	if !validValue(t.Price) || !validValue(t.SMA50) || !validValue(t.SMA200) {
		return models.TrendNeutral
	}
	price, sma50, sma200 := *t.Price, *t.SMA50, *t.SMA200
	if price > sma50 && sma50 > sma200 {
		return models.TrendBullish
	}
	if price < sma50 && sma50 < sma200 {
		return models.TrendBearish
	}
	return models.TrendNeutral
}

// classifyMomentum reads RSI14: above 70 overbought, below 30 oversold
func classifyMomentum(rsi *float64) models.Momentum {
	if !validValue(rsi) {
		return models.MomentumNeutral
	}
	if *rsi > 70 {
		return models.MomentumOverbought
	}
	if *rsi < 30 {
		return models.MomentumOversold
	}
	return models.MomentumNeutral
}

// classifyPricePosition places price within the 52-week range:
// percentile above 80 is near the high, below 20 near the low.
func classifyPricePosition(t *models.StockTechnicals) (models.PricePosition, *float64) {
	if !validValue(t.Price) || !validValue(t.High52Week) || !validValue(t.Low52Week) {
		return models.PositionUnknown, nil
	}
	high, low := *t.High52Week, *t.Low52Week
	if high <= low {
		return models.PositionUnknown, nil
	}
	percentile := clampFloat((*t.Price-low)/(high-low)*100, 0, 100)
	pct := floatPtr(roundTo1(percentile))
	switch {
	case percentile > 80:
		return models.PositionNearHigh, pct
	case percentile < 20:
		return models.PositionNearLow, pct
	default:
		return models.PositionMidRange, pct
	}
}

func technicalCommentary(read *models.TechnicalRead) string {
	var parts []string
	switch read.Trend {
	case models.TrendBullish:
		parts = append(parts, "Price is above its 50- and 200-day averages")
	case models.TrendBearish:
		parts = append(parts, "Price is below its 50- and 200-day averages")
	default:
		parts = append(parts, "Moving averages give no clear direction")
	}
	switch read.Momentum {
	case models.MomentumOverbought:
		parts = append(parts, "RSI signals overbought momentum")
	case models.MomentumOversold:
		parts = append(parts, "RSI signals oversold momentum")
	}
	switch read.PricePosition {
	case models.PositionNearHigh:
		parts = append(parts, "trading near its 52-week high")
	case models.PositionNearLow:
		parts = append(parts, "trading near its 52-week low")
	case models.PositionMidRange:
		if read.RangePercentile != nil {
			parts = append(parts, fmt.Sprintf("sitting mid-range at the %.0fth percentile of its 52-week band", *read.RangePercentile))
		}
	}
	return strings.Join(parts, "; ") + "."
}
