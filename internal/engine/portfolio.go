package engine

import (
	"fmt"
	"sort"

	"github.com/bobmcallan/aurora/internal/models"
)

// maxLargestPositions caps the largest-position list in concentration reports
const maxLargestPositions = 3

// DetectConcentrationRisk flags holdings whose weight exceeds the configured
// max single-position threshold and grades portfolio-level exposure.
func (e *Engine) DetectConcentrationRisk(allocations []models.Allocation) models.ConcentrationReport {
	report := models.ConcentrationReport{Level: models.ExposureLow}
	if len(allocations) == 0 {
		report.Notes = append(report.Notes, "No holdings to assess.")
		return report
	}

	sorted := make([]models.Allocation, len(allocations))
	copy(sorted, allocations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].WeightPct > sorted[j].WeightPct })

	for _, a := range sorted {
		if a.WeightPct > e.cfg.MaxSinglePositionPct {
			report.Flagged = append(report.Flagged, a)
		}
	}

	limit := maxLargestPositions
	if len(sorted) < limit {
		limit = len(sorted)
	}
	report.LargestPositions = sorted[:limit]

	switch {
	case len(report.Flagged) > 0 && sorted[0].WeightPct >= e.cfg.SellWeightPct:
		report.Level = models.ExposureHigh
	case len(report.Flagged) > 0:
		report.Level = models.ExposureModerate
	}

	for _, a := range report.Flagged {
		report.Notes = append(report.Notes, fmt.Sprintf(
			"%s is %.1f%% of the portfolio, above the %.0f%% single-position limit",
			a.Ticker, a.WeightPct, e.cfg.MaxSinglePositionPct))
	}
	return report
}

// SuggestPortfolioAction derives a buy/hold/trim/sell suggestion from the
// existing position weight and the analysis conviction. Weight guardrails win
// over conviction, and every reasoning string names the threshold that fired.
func (e *Engine) SuggestPortfolioAction(ticker string, pctx *models.PortfolioContext, conviction int) *models.PortfolioAction {
	weight := 0.0
	hasHolding := false
	if pctx != nil {
		weight = pctx.PositionWeightPct
		hasHolding = pctx.Holding != nil && pctx.Holding.Shares > 0
	}

	switch {
	case weight >= e.cfg.SellWeightPct:
		return &models.PortfolioAction{
			Action: models.ActionSell,
			Reasoning: []string{fmt.Sprintf(
				"%s is %.1f%% of the portfolio, at or above the %.0f%% sell threshold",
				ticker, weight, e.cfg.SellWeightPct)},
		}
	case weight >= e.cfg.TrimWeightPct:
		return &models.PortfolioAction{
			Action: models.ActionTrim,
			Reasoning: []string{fmt.Sprintf(
				"%s is %.1f%% of the portfolio, at or above the %.0f%% trim threshold",
				ticker, weight, e.cfg.TrimWeightPct)},
		}
	}

	fConviction := float64(conviction)
	switch {
	case !hasHolding && fConviction >= e.cfg.BuyConvictionMin:
		return &models.PortfolioAction{
			Action: models.ActionBuy,
			Reasoning: []string{fmt.Sprintf(
				"No existing position and conviction %d meets the %.0f buy threshold",
				conviction, e.cfg.BuyConvictionMin)},
		}
	case !hasHolding:
		return &models.PortfolioAction{
			Action: models.ActionHold,
			Reasoning: []string{fmt.Sprintf(
				"No existing position; conviction %d is below the %.0f buy threshold",
				conviction, e.cfg.BuyConvictionMin)},
		}
	case weight < e.cfg.MinMeaningfulWeightPct && fConviction >= e.cfg.AccumulateConvictionMin:
		return &models.PortfolioAction{
			Action: models.ActionBuy,
			Reasoning: []string{fmt.Sprintf(
				"Position is below the %.0f%% meaningful-weight floor and conviction %d meets the %.0f accumulate threshold",
				e.cfg.MinMeaningfulWeightPct, conviction, e.cfg.AccumulateConvictionMin)},
		}
	case fConviction < e.cfg.LowConvictionMax:
		return &models.PortfolioAction{
			Action: models.ActionTrim,
			Reasoning: []string{fmt.Sprintf(
				"Conviction %d is below the %.0f low-conviction threshold",
				conviction, e.cfg.LowConvictionMax)},
		}
	default:
		return &models.PortfolioAction{
			Action: models.ActionHold,
			Reasoning: []string{fmt.Sprintf(
				"Position weight %.1f%% and conviction %d sit inside normal bands",
				weight, conviction)},
		}
	}
}
