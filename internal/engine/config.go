// Package engine implements the deterministic scoring and recommendation core.
// Every function here is a pure function of its inputs; the only impurity is
// the timestamp stamped on AnalysisResult, isolated behind the injected clock.
package engine

import "time"

// Config holds every threshold the portfolio action engine and recommendation
// composer key off. It is an explicit value passed into New; there is no
// package-level mutable default.
type Config struct {
	// Position weight guardrails (percent of portfolio value)
	TrimWeightPct          float64 `json:"trim_weight_pct" toml:"trim_weight_pct"`
	SellWeightPct          float64 `json:"sell_weight_pct" toml:"sell_weight_pct"`
	MaxSinglePositionPct   float64 `json:"max_single_position_pct" toml:"max_single_position_pct"`
	MinMeaningfulWeightPct float64 `json:"min_meaningful_weight_pct" toml:"min_meaningful_weight_pct"`

	// Conviction bands for portfolio action suggestions (0-100)
	BuyConvictionMin        float64 `json:"buy_conviction_min" toml:"buy_conviction_min"`
	AccumulateConvictionMin float64 `json:"accumulate_conviction_min" toml:"accumulate_conviction_min"`
	LowConvictionMax        float64 `json:"low_conviction_max" toml:"low_conviction_max"`

	// Risk score bands (1-10)
	HighRiskScore     int `json:"high_risk_score" toml:"high_risk_score"`
	ElevatedRiskScore int `json:"elevated_risk_score" toml:"elevated_risk_score"`

	// Scenario point-estimate bias thresholds (percent over 3 months)
	PositiveBiasPct float64 `json:"positive_bias_pct" toml:"positive_bias_pct"`
	NegativeBiasPct float64 `json:"negative_bias_pct" toml:"negative_bias_pct"`
	SellBiasPct     float64 `json:"sell_bias_pct" toml:"sell_bias_pct"`
}

// DefaultConfig returns the documented engine thresholds.
func DefaultConfig() Config {
	return Config{
		TrimWeightPct:           20,
		SellWeightPct:           25,
		MaxSinglePositionPct:    20,
		MinMeaningfulWeightPct:  2,
		BuyConvictionMin:        65,
		AccumulateConvictionMin: 50,
		LowConvictionMax:        35,
		HighRiskScore:           8,
		ElevatedRiskScore:       6,
		PositiveBiasPct:         6,
		NegativeBiasPct:         -4,
		SellBiasPct:             -8,
	}
}

// Engine is the analysis and recommendation composer. It carries no mutable
// state; concurrent calls on the same Engine are safe.
type Engine struct {
	cfg Config
	now func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the timestamp source. Tests use this to freeze time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Engine with the given threshold configuration.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's threshold configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
