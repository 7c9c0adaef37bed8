// Package models defines data structures for Aurora
package models

// RiskTolerance describes how much downside variability an investor accepts
type RiskTolerance string

const (
	RiskToleranceLow      RiskTolerance = "low"
	RiskToleranceModerate RiskTolerance = "moderate"
	RiskToleranceHigh     RiskTolerance = "high"
)

// Horizon is the investor's intended holding period in years
type Horizon string

const (
	HorizonShort  Horizon = "1-3"
	HorizonMedium Horizon = "5-10"
	HorizonLong   Horizon = "10+"
)

// Objective is the investor's primary portfolio goal
type Objective string

const (
	ObjectiveGrowth   Objective = "growth"
	ObjectiveIncome   Objective = "income"
	ObjectiveBalanced Objective = "balanced"
)

// UserProfile captures the investor context every analysis is keyed off.
// It is an immutable input: the engine never mutates it.
type UserProfile struct {
	RiskTolerance RiskTolerance `json:"risk_tolerance" validate:"required,oneof=low moderate high"`
	Horizon       Horizon       `json:"horizon" validate:"required,oneof=1-3 5-10 10+"`
	Objective     Objective     `json:"objective" validate:"required,oneof=growth income balanced"`
}

// RecommendationHorizon is the timeframe label attached to a recommendation
type RecommendationHorizon string

const (
	RecHorizonShortTerm  RecommendationHorizon = "short_term"
	RecHorizonMediumTerm RecommendationHorizon = "medium_term"
	RecHorizonLongTerm   RecommendationHorizon = "long_term"
)

// RecommendationHorizonFor maps a profile horizon to a recommendation timeframe.
// Exhaustive over the Horizon constants; unrecognized values fall back to medium.
func RecommendationHorizonFor(h Horizon) RecommendationHorizon {
	switch h {
	case HorizonShort:
		return RecHorizonShortTerm
	case HorizonMedium:
		return RecHorizonMediumTerm
	case HorizonLong:
		return RecHorizonLongTerm
	default:
		return RecHorizonMediumTerm
	}
}
