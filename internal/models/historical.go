package models

import "time"

// Period is a supported historical lookback window
type Period string

const (
	Period1M Period = "1M"
	Period3M Period = "3M"
	Period6M Period = "6M"
	Period1Y Period = "1Y"
	Period5Y Period = "5Y"
)

// Months returns the number of calendar months the period spans.
// Unknown periods report 0; callers treat that as "cannot annualize".
func (p Period) Months() int {
	switch p {
	case Period1M:
		return 1
	case Period3M:
		return 3
	case Period6M:
		return 6
	case Period1Y:
		return 12
	case Period5Y:
		return 60
	default:
		return 0
	}
}

// TrendChangeThresholdPct returns the minimum percentage move required to
// call a directional trend over this period.
func (p Period) TrendChangeThresholdPct() float64 {
	switch p {
	case Period1M:
		return 3
	case Period3M:
		return 5
	case Period6M:
		return 7
	case Period1Y:
		return 10
	case Period5Y:
		return 15
	default:
		return 5
	}
}

// PricePoint is one observation in a historical price series
type PricePoint struct {
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Volume int64     `json:"volume,omitempty"`
}

// HistoricalData is an ordered price series for a ticker. Analytics require
// chronological ascending order; SanitizeSeries handles sorting and de-duping.
type HistoricalData struct {
	Ticker     string       `json:"ticker"`
	Period     Period       `json:"period"`
	DataPoints []PricePoint `json:"data_points"`
}

// HistoricalReturns summarizes simple and annualized returns over a series
type HistoricalReturns struct {
	SimpleReturnPct     float64 `json:"simple_return_pct"`
	AnnualizedReturnPct float64 `json:"annualized_return_pct"`
}

// TrendDirection classifies a historical series
type TrendDirection string

const (
	TrendUp       TrendDirection = "uptrend"
	TrendDown     TrendDirection = "downtrend"
	TrendSideways TrendDirection = "sideways"
)

// TrendReport is the outcome of historical trend detection
type TrendReport struct {
	Direction TrendDirection `json:"direction"`
	ChangePct float64        `json:"change_pct"`
	Slope     float64        `json:"slope"`   // OLS slope of price vs index
	Breadth   float64        `json:"breadth"` // advancing days / total moves, 0-1
}

// HistoryAnalysis bundles the historical analytics for one ticker and period
type HistoryAnalysis struct {
	Ticker        string            `json:"ticker"`
	Period        Period            `json:"period"`
	Returns       HistoricalReturns `json:"returns"`
	VolatilityPct float64           `json:"volatility_pct"`
	Trend         TrendReport       `json:"trend"`
	DataPoints    int               `json:"data_points"`
}
