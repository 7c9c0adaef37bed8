package models

// StockData combines all raw inputs for a single ticker analysis.
// Every component is optional; the engine degrades precision rather than
// failing when a section or field is absent.
type StockData struct {
	Ticker       string             `json:"ticker"`
	Exchange     string             `json:"exchange,omitempty"`
	Name         string             `json:"name,omitempty"`
	Fundamentals *StockFundamentals `json:"fundamentals,omitempty"`
	Technicals   *StockTechnicals   `json:"technicals,omitempty"`
	Sentiment    *StockSentiment    `json:"sentiment,omitempty"`
}

// StockFundamentals holds fundamental metrics. Pointer fields distinguish
// "provider did not supply this" (nil) from a genuine zero value.
type StockFundamentals struct {
	TrailingPE           *float64 `json:"trailing_pe,omitempty"`
	ForwardPE            *float64 `json:"forward_pe,omitempty"`
	EPSGrowthYoYPct      *float64 `json:"eps_growth_yoy_pct,omitempty"`
	RevenueGrowthYoYPct  *float64 `json:"revenue_growth_yoy_pct,omitempty"`
	NetMarginPct         *float64 `json:"net_margin_pct,omitempty"`
	FreeCashFlowYieldPct *float64 `json:"free_cash_flow_yield_pct,omitempty"`
	DebtToEquity         *float64 `json:"debt_to_equity,omitempty"`
	ReturnOnEquityPct    *float64 `json:"return_on_equity_pct,omitempty"`
	DividendYieldPct     *float64 `json:"dividend_yield_pct,omitempty"`
	EarningsYieldPct     *float64 `json:"earnings_yield_pct,omitempty"`
}

// StockTechnicals holds price and indicator data
type StockTechnicals struct {
	Price      *float64 `json:"price,omitempty"`
	SMA20      *float64 `json:"sma_20,omitempty"`
	SMA50      *float64 `json:"sma_50,omitempty"`
	SMA200     *float64 `json:"sma_200,omitempty"`
	RSI14      *float64 `json:"rsi_14,omitempty"`
	High52Week *float64 `json:"high_52_week,omitempty"`
	Low52Week  *float64 `json:"low_52_week,omitempty"`
	Volume     *int64   `json:"volume,omitempty"`
	AvgVolume  *int64   `json:"avg_volume,omitempty"`
}

// AnalystConsensus is the aggregated analyst rating
type AnalystConsensus string

const (
	ConsensusStrongBuy  AnalystConsensus = "strong_buy"
	ConsensusBuy        AnalystConsensus = "buy"
	ConsensusHold       AnalystConsensus = "hold"
	ConsensusSell       AnalystConsensus = "sell"
	ConsensusStrongSell AnalystConsensus = "strong_sell"
)

// StockSentiment holds analyst and news sentiment inputs
type StockSentiment struct {
	Consensus       AnalystConsensus `json:"consensus,omitempty"`
	TargetMeanPrice *float64         `json:"target_mean_price,omitempty"`
	TargetHighPrice *float64         `json:"target_high_price,omitempty"`
	TargetLowPrice  *float64         `json:"target_low_price,omitempty"`
	NewsThemes      []string         `json:"news_themes,omitempty"`
}
