package engine

import (
	"github.com/bobmcallan/aurora/internal/models"
)

// Generic risk disclaimers attached to every guidance block
var genericRiskNotes = []string{
	"Past performance does not predict future returns; any single position can lose value quickly.",
	"This guidance is educational framework language, not personalized financial advice.",
}

// BuildPlanningGuidance assembles framework-language planning strings from
// the profile. Pure string selection; every riskTolerance × horizon ×
// objective combination produces non-empty guidance.
func BuildPlanningGuidance(profile *models.UserProfile) *models.PlanningGuidance {
	if profile == nil {
		return nil
	}

	guidance := &models.PlanningGuidance{
		PositionSizing: sizingGuidance(profile.RiskTolerance),
		Timing:         timingGuidance(profile.Horizon),
		LanguageNotes:  "Guidance uses planning-framework language: position sizing, staged entries, and review cadence rather than price targets.",
	}
	guidance.RiskNotes = append(objectiveRiskNotes(profile.Objective), genericRiskNotes...)
	return guidance
}

func sizingGuidance(tolerance models.RiskTolerance) string {
	switch tolerance {
	case models.RiskToleranceLow:
		return "Keep any single position small; a starter weight of 1-2% of investable assets leaves room to be wrong without denting the plan."
	case models.RiskToleranceHigh:
		return "A conviction position of up to 5-8% of investable assets can fit this tolerance, provided the rest of the portfolio stays diversified."
	case models.RiskToleranceModerate:
		return "A position of 2-4% of investable assets balances participation against single-name risk."
	default:
		return "A position of 2-4% of investable assets balances participation against single-name risk."
	}
}

func timingGuidance(horizon models.Horizon) string {
	switch horizon {
	case models.HorizonShort:
		return "With a 1-3 year window, stage entries across several weeks and predefine an exit review; short horizons leave little time to recover from drawdowns."
	case models.HorizonLong:
		return "With a 10+ year window, entry timing matters far less than staying invested; consider simple periodic buys and an annual review."
	case models.HorizonMedium:
		return "With a 5-10 year window, spread entries across a few months and review the thesis semi-annually."
	default:
		return "Spread entries across a few months and review the thesis semi-annually."
	}
}

func objectiveRiskNotes(objective models.Objective) []string {
	switch objective {
	case models.ObjectiveGrowth:
		return []string{"Growth objectives concentrate outcome risk in a few compounders; expect deeper interim drawdowns than the index."}
	case models.ObjectiveIncome:
		return []string{"Income objectives are exposed to dividend cuts and rate moves; yield alone is not a safety margin."}
	case models.ObjectiveBalanced:
		return []string{"Balanced objectives trade upside for stability; rebalance when any sleeve drifts well past target."}
	default:
		return []string{"Match each position's role to the portfolio objective before sizing it."}
	}
}
