package models

// FundamentalsClassification buckets overall business quality
type FundamentalsClassification string

const (
	FundamentalsStrong  FundamentalsClassification = "strong"
	FundamentalsOK      FundamentalsClassification = "ok"
	FundamentalsWeak    FundamentalsClassification = "weak"
	FundamentalsUnknown FundamentalsClassification = "unknown"
)

// FundamentalsInsight is the composite quality read for a stock.
// A "strong" classification is downgraded to "ok" whenever any cautionary
// note fired, so strong always means strong-with-no-caveats.
type FundamentalsInsight struct {
	Classification  FundamentalsClassification `json:"classification"`
	QualityScore    int                        `json:"quality_score"` // 0-100
	Drivers         []string                   `json:"drivers,omitempty"`
	CautionaryNotes []string                   `json:"cautionary_notes,omitempty"`
}

// ValuationClassification buckets how expensively growth is priced
type ValuationClassification string

const (
	ValuationCheap   ValuationClassification = "cheap"
	ValuationFair    ValuationClassification = "fair"
	ValuationRich    ValuationClassification = "rich"
	ValuationUnknown ValuationClassification = "unknown"
)

// PegBucket classifies the PEG ratio
type PegBucket string

const (
	PegDiscount  PegBucket = "discount"
	PegBalanced  PegBucket = "balanced"
	PegDemanding PegBucket = "demanding"
	PegDistorted PegBucket = "distorted" // negative or near-zero growth, ratio unreliable
)

// GrowthSource names which growth series a PEG ratio was normalized against
type GrowthSource string

const (
	GrowthSourceEPS     GrowthSource = "eps"
	GrowthSourceRevenue GrowthSource = "revenue"
)

// PegAssessment is the PEG portion of a valuation insight
type PegAssessment struct {
	Bucket              PegBucket    `json:"bucket"`
	Ratio               *float64     `json:"ratio,omitempty"`
	NormalizedGrowthPct *float64     `json:"normalized_growth_pct,omitempty"`
	GrowthSource        GrowthSource `json:"growth_source,omitempty"`
	Commentary          string       `json:"commentary,omitempty"`
}

// ValuationInsight is the composite valuation read for a stock
type ValuationInsight struct {
	Classification       ValuationClassification `json:"classification"`
	ValuationScore       int                     `json:"valuation_score"` // 0-100
	Peg                  *PegAssessment          `json:"peg,omitempty"`
	EarningsYieldPct     *float64                `json:"earnings_yield_pct,omitempty"`
	FreeCashFlowYieldPct *float64                `json:"free_cash_flow_yield_pct,omitempty"`
	DividendYieldPct     *float64                `json:"dividend_yield_pct,omitempty"`
	Commentary           string                  `json:"commentary,omitempty"`
	Drivers              []string                `json:"drivers,omitempty"`
	CautionaryNotes      []string                `json:"cautionary_notes,omitempty"`
}

// TrendType classifies price trend from moving averages
type TrendType string

const (
	TrendBullish TrendType = "bullish"
	TrendBearish TrendType = "bearish"
	TrendNeutral TrendType = "neutral"
)

// Momentum classifies RSI momentum state
type Momentum string

const (
	MomentumOverbought Momentum = "overbought"
	MomentumOversold   Momentum = "oversold"
	MomentumNeutral    Momentum = "neutral"
)

// PricePosition describes where price sits in the 52-week range
type PricePosition string

const (
	PositionNearHigh PricePosition = "near_high"
	PositionNearLow  PricePosition = "near_low"
	PositionMidRange PricePosition = "mid_range"
	PositionUnknown  PricePosition = "unknown"
)

// TechnicalRead is the classified technical state of a ticker
type TechnicalRead struct {
	Trend           TrendType     `json:"trend"`
	Momentum        Momentum      `json:"momentum"`
	PricePosition   PricePosition `json:"price_position"`
	RangePercentile *float64      `json:"range_percentile,omitempty"` // 0-100 within 52w range
	Commentary      string        `json:"commentary,omitempty"`
}

// TargetGap classifies the analyst target price vs the current price
type TargetGap string

const (
	GapSignificantUpside TargetGap = "significant_upside"
	GapLimited           TargetGap = "limited"
	GapDownsideRisk      TargetGap = "downside_risk"
	GapUnknown           TargetGap = "unknown"
)

// SentimentRead is the classified analyst/news sentiment for a ticker
type SentimentRead struct {
	ConsensusLabel string    `json:"consensus_label"`
	TargetGap      TargetGap `json:"target_gap"`
	UpsidePct      *float64  `json:"upside_pct,omitempty"`
	NewsHighlight  string    `json:"news_highlight"`
}
