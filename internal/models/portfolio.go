package models

import "time"

// PortfolioHolding is a single position in the user's portfolio
type PortfolioHolding struct {
	Ticker           string    `json:"ticker"`
	Shares           float64   `json:"shares"`
	AverageCostBasis float64   `json:"average_cost_basis"`
	PurchaseDate     time.Time `json:"purchase_date"`
}

// PortfolioMetrics summarizes whole-portfolio state
type PortfolioMetrics struct {
	TotalValue       float64 `json:"total_value"`
	TotalCost        float64 `json:"total_cost"`
	TotalGainLoss    float64 `json:"total_gain_loss"`
	TotalGainLossPct float64 `json:"total_gain_loss_pct"`
	Beta             float64 `json:"beta,omitempty"`
	Volatility       float64 `json:"volatility,omitempty"`
}

// PortfolioContext links an analysis request to the user's existing exposure.
// It is optional everywhere it is consumed; stand-alone analysis is valid.
type PortfolioContext struct {
	Holding           *PortfolioHolding `json:"holding,omitempty"`
	Metrics           *PortfolioMetrics `json:"metrics,omitempty"`
	PositionWeightPct float64           `json:"position_weight_pct"`
	SuggestedAction   *PortfolioAction  `json:"suggested_action,omitempty"`
}

// RecommendedAction is the closed set of position actions
type RecommendedAction string

const (
	ActionBuy  RecommendedAction = "buy"
	ActionHold RecommendedAction = "hold"
	ActionTrim RecommendedAction = "trim"
	ActionSell RecommendedAction = "sell"
)

// PortfolioAction pairs an action with the reasoning that produced it
type PortfolioAction struct {
	Action    RecommendedAction `json:"action"`
	Reasoning []string          `json:"reasoning,omitempty"`
}

// Allocation is a ticker's weight within the portfolio
type Allocation struct {
	Ticker    string  `json:"ticker"`
	WeightPct float64 `json:"weight_pct"`
}

// ExposureLevel grades portfolio-level concentration
type ExposureLevel string

const (
	ExposureLow      ExposureLevel = "low"
	ExposureModerate ExposureLevel = "moderate"
	ExposureHigh     ExposureLevel = "high"
)

// ConcentrationReport flags outsized single positions
type ConcentrationReport struct {
	Level            ExposureLevel `json:"level"`
	Flagged          []Allocation  `json:"flagged,omitempty"`
	LargestPositions []Allocation  `json:"largest_positions,omitempty"`
	Notes            []string      `json:"notes,omitempty"`
}

// PortfolioOverview is the whole-portfolio view served to clients
type PortfolioOverview struct {
	Metrics       PortfolioMetrics    `json:"metrics"`
	Allocations   []Allocation        `json:"allocations,omitempty"`
	Concentration ConcentrationReport `json:"concentration"`
}
