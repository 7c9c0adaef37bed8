package models

// ScenarioBand is one of the bull/base/bear projection bands
type ScenarioBand struct {
	Name                  string  `json:"name"` // bull, base, bear
	ExpectedReturnLowPct  float64 `json:"expected_return_low_pct"`
	ExpectedReturnHighPct float64 `json:"expected_return_high_pct"`
	ProbabilityPct        int     `json:"probability_pct"`
	Description           string  `json:"description"`
}

// ScenarioSummary holds the 3-month probability-weighted projection.
// The three band probabilities always sum to 100.
type ScenarioSummary struct {
	Bull                   ScenarioBand `json:"bull"`
	Base                   ScenarioBand `json:"base"`
	Bear                   ScenarioBand `json:"bear"`
	HorizonMonths          int          `json:"horizon_months"`
	PointEstimateReturnPct float64      `json:"point_estimate_return_pct"`
	UncertaintyComment     string       `json:"uncertainty_comment"`
}
