package models

// ActiveManagerRecommendation is the top-level portfolio-aware output: one
// action with a confidence score, assembled under profile and risk guardrails.
type ActiveManagerRecommendation struct {
	Ticker              string                `json:"ticker"`
	PrimaryAction       RecommendedAction     `json:"primary_action"`
	Horizon             RecommendationHorizon `json:"horizon"`
	ConfidenceScore     int                   `json:"confidence_score"` // 0-100
	ExpectedReturn3mPct *float64              `json:"expected_return_3m_pct,omitempty"`
	Headline            string                `json:"headline"`
	Rationale           []string              `json:"rationale,omitempty"`
	RiskFlags           []string              `json:"risk_flags,omitempty"`
	Notes               []string              `json:"notes,omitempty"`
}
