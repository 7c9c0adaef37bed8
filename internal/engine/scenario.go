package engine

import (
	"github.com/bobmcallan/aurora/internal/models"
)

// Fixed band probabilities. They sum to 100 by construction.
const (
	bullProbabilityPct = 25
	baseProbabilityPct = 50
	bearProbabilityPct = 25
)

// scenarioHorizonMonths is the projection window
const scenarioHorizonMonths = 3

// scenarioUncertaintyComment ships with every summary; projections are
// illustrative bands, not forecasts.
const scenarioUncertaintyComment = "These bands are illustrative probability-weighted ranges, not forecasts. Actual outcomes routinely fall outside all three scenarios."

// ProjectScenarios builds the bull/base/bear 3-month bands for a risk
// tolerance. Higher tolerance widens both tails.
func ProjectScenarios(tolerance models.RiskTolerance) *models.ScenarioSummary {
	bullLow, bullHigh, baseLow, baseHigh, bearLow, bearHigh := scenarioBands(tolerance)

	bull := models.ScenarioBand{
		Name:                  "bull",
		ExpectedReturnLowPct:  bullLow,
		ExpectedReturnHighPct: bullHigh,
		ProbabilityPct:        bullProbabilityPct,
		Description:           "Earnings and sentiment both break favorably.",
	}
	base := models.ScenarioBand{
		Name:                  "base",
		ExpectedReturnLowPct:  baseLow,
		ExpectedReturnHighPct: baseHigh,
		ProbabilityPct:        baseProbabilityPct,
		Description:           "Business tracks roughly as the market expects.",
	}
	bear := models.ScenarioBand{
		Name:                  "bear",
		ExpectedReturnLowPct:  bearLow,
		ExpectedReturnHighPct: bearHigh,
		ProbabilityPct:        bearProbabilityPct,
		Description:           "Results disappoint or the broader market sells off.",
	}

	point := 0.25*bandMid(bull) + 0.5*bandMid(base) + 0.25*bandMid(bear)

	return &models.ScenarioSummary{
		Bull:                   bull,
		Base:                   base,
		Bear:                   bear,
		HorizonMonths:          scenarioHorizonMonths,
		PointEstimateReturnPct: roundTo1(point),
		UncertaintyComment:     scenarioUncertaintyComment,
	}
}

// scenarioBands returns the base return-range triples per risk tolerance.
// Unknown tolerances use the moderate bands.
func scenarioBands(tolerance models.RiskTolerance) (bullLow, bullHigh, baseLow, baseHigh, bearLow, bearHigh float64) {
	switch tolerance {
	case models.RiskToleranceLow:
		return 6, 12, -4, 5, -12, -3
	case models.RiskToleranceHigh:
		return 10, 18, -8, 9, -20, -7
	case models.RiskToleranceModerate:
		return 8, 15, -6, 7, -15, -5
	default:
		return 8, 15, -6, 7, -15, -5
	}
}

func bandMid(b models.ScenarioBand) float64 {
	return (b.ExpectedReturnLowPct + b.ExpectedReturnHighPct) / 2
}
