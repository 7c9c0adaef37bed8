package models

import "time"

// AnalysisSummary is the top-line read across all analysis dimensions
type AnalysisSummary struct {
	HeadlineView      string   `json:"headline_view"`
	RiskScore         int      `json:"risk_score"`          // 1-10
	ConvictionScore3m int      `json:"conviction_score_3m"` // 0-100
	KeyTakeaways      []string `json:"key_takeaways,omitempty"`
}

// PlanningGuidance holds framework-language planning strings keyed off the
// user profile. No numbers are computed here; it is guidance copy only.
type PlanningGuidance struct {
	PositionSizing string   `json:"position_sizing"`
	Timing         string   `json:"timing"`
	RiskNotes      []string `json:"risk_notes"`
	LanguageNotes  string   `json:"language_notes"`
}

// AnalysisResult aggregates every insight the engine produces for one ticker.
// GeneratedAt is the only non-deterministic field and is stamped exactly once
// at composition time from the engine's injected clock.
type AnalysisResult struct {
	Ticker      string    `json:"ticker"`
	GeneratedAt time.Time `json:"generated_at"`

	Fundamentals *FundamentalsInsight `json:"fundamentals,omitempty"`
	Valuation    *ValuationInsight    `json:"valuation,omitempty"`
	Technical    *TechnicalRead       `json:"technical,omitempty"`
	Sentiment    *SentimentRead       `json:"sentiment,omitempty"`
	Scenarios    *ScenarioSummary     `json:"scenarios,omitempty"`
	Guidance     *PlanningGuidance    `json:"guidance,omitempty"`
	Portfolio    *PortfolioContext    `json:"portfolio,omitempty"`
	Summary      AnalysisSummary      `json:"summary"`

	// Human-readable compositions of the structured insights above
	FundamentalsView string `json:"fundamentals_view"`
	ValuationView    string `json:"valuation_view"`
	TechnicalView    string `json:"technical_view"`
	SentimentView    string `json:"sentiment_view"`

	Disclaimer string `json:"disclaimer"`
}
