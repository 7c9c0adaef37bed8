package engine

import (
	"fmt"
	"math"

	"github.com/bobmcallan/aurora/internal/models"
)

// Composite weights and strong/weak anchors for the quality score.
// Weights sum to 1.0.
const (
	weightEPSGrowth  = 0.25
	weightNetMargin  = 0.20
	weightFCFYield   = 0.20
	weightROE        = 0.15
	weightRevGrowth  = 0.10
	weightDebtEquity = 0.10
)

// maxFundamentalsDrivers caps the driver list so the headline read stays short
const maxFundamentalsDrivers = 3

// BuildFundamentalsInsight computes the composite quality score and
// classification for a stock's fundamentals.
//
// Missing-value policy at this layer: a fundamentals object that is entirely
// absent yields the unknown default (score 0, "data not available"); an
// individual sub-metric that is absent contributes 0 to the weighted sum,
// deliberately not the per-metric neutral 0.5.
func BuildFundamentalsInsight(f *models.StockFundamentals) *models.FundamentalsInsight {
	if f == nil || !hasAnyFundamental(f) {
		return &models.FundamentalsInsight{
			Classification:  models.FundamentalsUnknown,
			QualityScore:    0,
			CautionaryNotes: []string{"Fundamental data not available for this ticker."},
		}
	}

	sum := 0.0
	sum += weightedContribution(f.EPSGrowthYoYPct, weightEPSGrowth, func(v *float64) float64 {
		return scorePositiveMetric(v, 20, 0)
	})
	sum += weightedContribution(f.NetMarginPct, weightNetMargin, func(v *float64) float64 {
		return scorePositiveMetric(v, 22, 5)
	})
	sum += weightedContribution(f.FreeCashFlowYieldPct, weightFCFYield, func(v *float64) float64 {
		return scorePositiveMetric(v, 5, 0.5)
	})
	sum += weightedContribution(f.ReturnOnEquityPct, weightROE, func(v *float64) float64 {
		return scorePositiveMetric(v, 25, 8)
	})
	sum += weightedContribution(f.RevenueGrowthYoYPct, weightRevGrowth, func(v *float64) float64 {
		return scorePositiveMetric(v, 12, -5)
	})
	sum += weightedContribution(f.DebtToEquity, weightDebtEquity, func(v *float64) float64 {
		return scoreNegativeMetric(v, 0.8, 3)
	})

	score := int(math.Round(clampFloat(sum*100, 0, 100)))
	drivers := fundamentalsDrivers(f)
	cautions := fundamentalsCautions(f)

	classification := classifyQuality(score)
	if classification == models.FundamentalsStrong && len(cautions) > 0 {
		// Strong means strong with no caveats
		classification = models.FundamentalsOK
	}

	return &models.FundamentalsInsight{
		Classification:  classification,
		QualityScore:    score,
		Drivers:         drivers,
		CautionaryNotes: cautions,
	}
}

func classifyQuality(score int) models.FundamentalsClassification {
	switch {
	case score >= 72:
		return models.FundamentalsStrong
	case score < 40:
		return models.FundamentalsWeak
	default:
		return models.FundamentalsOK
	}
}

// weightedContribution applies weight×score when the metric is present, and
// contributes nothing when it is absent.
func weightedContribution(v *float64, weight float64, score func(*float64) float64) float64 {
	if !validValue(v) {
		return absentContribution()
	}
	return weight * score(v)
}

// hasAnyFundamental reports whether at least one scored metric is present
func hasAnyFundamental(f *models.StockFundamentals) bool {
	return validValue(f.EPSGrowthYoYPct) ||
		validValue(f.NetMarginPct) ||
		validValue(f.FreeCashFlowYieldPct) ||
		validValue(f.ReturnOnEquityPct) ||
		validValue(f.RevenueGrowthYoYPct) ||
		validValue(f.DebtToEquity)
}

// fundamentalsDrivers derives up to maxFundamentalsDrivers positive headline
// points from fixed textual thresholds.
func fundamentalsDrivers(f *models.StockFundamentals) []string {
	var drivers []string
	if validValue(f.EPSGrowthYoYPct) && *f.EPSGrowthYoYPct >= 18 {
		drivers = append(drivers, fmt.Sprintf("EPS growing %.1f%% year over year", *f.EPSGrowthYoYPct))
	}
	if validValue(f.NetMarginPct) && *f.NetMarginPct >= 20 {
		drivers = append(drivers, fmt.Sprintf("High net margin of %.1f%%", *f.NetMarginPct))
	}
	if validValue(f.FreeCashFlowYieldPct) && *f.FreeCashFlowYieldPct >= 4 {
		drivers = append(drivers, fmt.Sprintf("Free cash flow yield of %.1f%%", *f.FreeCashFlowYieldPct))
	}
	if validValue(f.ReturnOnEquityPct) && *f.ReturnOnEquityPct >= 20 {
		drivers = append(drivers, fmt.Sprintf("Return on equity of %.1f%%", *f.ReturnOnEquityPct))
	}
	if validValue(f.RevenueGrowthYoYPct) && *f.RevenueGrowthYoYPct >= 10 {
		drivers = append(drivers, fmt.Sprintf("Revenue growing %.1f%% year over year", *f.RevenueGrowthYoYPct))
	}
	if validValue(f.DebtToEquity) && *f.DebtToEquity <= 0.5 {
		drivers = append(drivers, fmt.Sprintf("Conservative balance sheet (debt/equity %.2f)", *f.DebtToEquity))
	}
	if len(drivers) > maxFundamentalsDrivers {
		drivers = drivers[:maxFundamentalsDrivers]
	}
	return drivers
}

// fundamentalsCautions derives cautionary notes from fixed textual thresholds.
// Unbounded by design, though typically four or fewer fire at once.
func fundamentalsCautions(f *models.StockFundamentals) []string {
	var cautions []string
	if validValue(f.DebtToEquity) && *f.DebtToEquity > 2.5 {
		cautions = append(cautions, fmt.Sprintf("Elevated leverage: debt/equity of %.2f", *f.DebtToEquity))
	}
	if validValue(f.EPSGrowthYoYPct) && *f.EPSGrowthYoYPct < 0 {
		cautions = append(cautions, fmt.Sprintf("EPS contracting %.1f%% year over year", *f.EPSGrowthYoYPct))
	}
	if validValue(f.RevenueGrowthYoYPct) && *f.RevenueGrowthYoYPct < 0 {
		cautions = append(cautions, fmt.Sprintf("Revenue contracting %.1f%% year over year", *f.RevenueGrowthYoYPct))
	}
	if validValue(f.NetMarginPct) && *f.NetMarginPct < 3 {
		cautions = append(cautions, fmt.Sprintf("Thin net margin of %.1f%%", *f.NetMarginPct))
	}
	if validValue(f.FreeCashFlowYieldPct) && *f.FreeCashFlowYieldPct < 0 {
		cautions = append(cautions, "Negative free cash flow")
	}
	if validValue(f.ReturnOnEquityPct) && *f.ReturnOnEquityPct < 5 {
		cautions = append(cautions, fmt.Sprintf("Low return on equity of %.1f%%", *f.ReturnOnEquityPct))
	}
	return cautions
}
