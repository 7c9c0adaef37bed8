package engine

import (
	"fmt"
	"math"

	"github.com/bobmcallan/aurora/internal/models"
)

// Composite weights for the valuation score. Unlike the quality composite,
// absent metrics drop out of both numerator and denominator; the score is a
// weighted mean over whatever is present.
const (
	weightPegBucket     = 0.35
	weightEarningsYield = 0.25
	weightFCFYieldVal   = 0.25
	weightDividendYield = 0.15
)

// minReliableGrowthPct is the growth floor below which PEG is distorted:
// dividing a P/E by near-zero growth produces meaningless ratios.
const minReliableGrowthPct = 5.0

// BuildValuationInsight computes the PEG assessment plus the composite
// valuation score and classification.
func BuildValuationInsight(f *models.StockFundamentals) *models.ValuationInsight {
	if f == nil {
		return &models.ValuationInsight{
			Classification:  models.ValuationUnknown,
			CautionaryNotes: []string{"Valuation data not available for this ticker."},
		}
	}

	peg := AssessPeg(f)
	earningsYield := earningsYieldPct(f)

	var weightedSum, weightSum float64
	var drivers, cautions []string

	if peg != nil {
		weightedSum += weightPegBucket * pegBucketScore(peg.Bucket)
		weightSum += weightPegBucket
		switch peg.Bucket {
		case models.PegDiscount:
			drivers = append(drivers, "Growth is cheaply priced relative to earnings multiple")
		case models.PegDemanding:
			cautions = append(cautions, "Valuation demands sustained growth delivery")
			if peg.Ratio != nil && *peg.Ratio >= 3 {
				cautions = append(cautions, "PEG above 3 leaves little room for execution missteps")
			}
		case models.PegDistorted:
			cautions = append(cautions, "PEG unreliable at current growth levels")
		case models.PegBalanced:
			// No headline either way
		}
	}
	if validValue(earningsYield) {
		weightedSum += weightEarningsYield * scorePositiveMetric(earningsYield, 6, 2)
		weightSum += weightEarningsYield
		if *earningsYield >= 6 {
			drivers = append(drivers, fmt.Sprintf("Earnings yield of %.1f%%", *earningsYield))
		}
	}
	if validValue(f.FreeCashFlowYieldPct) {
		weightedSum += weightFCFYieldVal * scorePositiveMetric(f.FreeCashFlowYieldPct, 5, 1)
		weightSum += weightFCFYieldVal
		if *f.FreeCashFlowYieldPct >= 5 {
			drivers = append(drivers, fmt.Sprintf("Free cash flow yield of %.1f%%", *f.FreeCashFlowYieldPct))
		}
	}
	if validValue(f.DividendYieldPct) {
		weightedSum += weightDividendYield * scorePositiveMetric(f.DividendYieldPct, 3, 0.2)
		weightSum += weightDividendYield
		if *f.DividendYieldPct >= 3 {
			drivers = append(drivers, fmt.Sprintf("Dividend yield of %.1f%%", *f.DividendYieldPct))
		}
	}

	if weightSum == 0 {
		return &models.ValuationInsight{
			Classification:  models.ValuationUnknown,
			Peg:             peg,
			CautionaryNotes: []string{"No valuation metrics available for this ticker."},
		}
	}

	score := clampInt(int(math.Round(weightedSum/weightSum*100)), 0, 100)
	classification := classifyValuation(score)

	insight := &models.ValuationInsight{
		Classification:       classification,
		ValuationScore:       score,
		Peg:                  peg,
		EarningsYieldPct:     earningsYield,
		FreeCashFlowYieldPct: f.FreeCashFlowYieldPct,
		DividendYieldPct:     f.DividendYieldPct,
		Commentary:           valuationCommentary(classification),
		Drivers:              drivers,
		CautionaryNotes:      cautions,
	}
	return insight
}

// AssessPeg buckets the PEG ratio. Growth source selection prefers EPS growth
// and falls back to revenue growth; without either (or without a P/E) the PEG
// cannot be computed and nil is returned.
func AssessPeg(f *models.StockFundamentals) *models.PegAssessment {
	pe := preferredPE(f)
	growth, source := preferredGrowth(f)
	if growth == nil {
		return nil
	}

	assessment := &models.PegAssessment{
		NormalizedGrowthPct: growth,
		GrowthSource:        source,
	}

	// Low or negative growth makes the ratio meaningless, not cheap
	if *growth < minReliableGrowthPct {
		assessment.Bucket = models.PegDistorted
		assessment.Commentary = "Growth too low for a reliable PEG read."
		return assessment
	}
	if pe == nil || *pe <= 0 {
		return nil
	}

	ratio := *pe / *growth
	assessment.Ratio = floatPtr(ratio)
	switch {
	case ratio <= 1:
		assessment.Bucket = models.PegDiscount
		assessment.Commentary = "Earnings multiple is low relative to growth."
	case ratio >= 1.8:
		assessment.Bucket = models.PegDemanding
		assessment.Commentary = "Market is paying a premium for expected growth."
	default:
		assessment.Bucket = models.PegBalanced
		assessment.Commentary = "Price and growth look roughly in balance."
	}
	return assessment
}

// pegBucketScore maps a PEG bucket into the composite score space
func pegBucketScore(b models.PegBucket) float64 {
	switch b {
	case models.PegDiscount:
		return 1
	case models.PegBalanced:
		return 0.7
	case models.PegDemanding:
		return 0.25
	case models.PegDistorted:
		return 0.45
	default:
		return 0.45
	}
}

func classifyValuation(score int) models.ValuationClassification {
	switch {
	case score >= 65:
		return models.ValuationCheap
	case score < 35:
		return models.ValuationRich
	default:
		return models.ValuationFair
	}
}

func valuationCommentary(c models.ValuationClassification) string {
	switch c {
	case models.ValuationCheap:
		return "Valuation looks undemanding across yield and growth measures."
	case models.ValuationRich:
		return "Valuation is stretched; much of the upside may already be priced in."
	case models.ValuationFair:
		return "Valuation sits in a reasonable range for the quality on offer."
	default:
		return "Insufficient data for a valuation read."
	}
}

// preferredPE prefers the forward multiple when available
func preferredPE(f *models.StockFundamentals) *float64 {
	if validValue(f.ForwardPE) {
		return f.ForwardPE
	}
	if validValue(f.TrailingPE) {
		return f.TrailingPE
	}
	return nil
}

// preferredGrowth selects the PEG growth denominator: EPS growth first,
// revenue growth as fallback.
func preferredGrowth(f *models.StockFundamentals) (*float64, models.GrowthSource) {
	if validValue(f.EPSGrowthYoYPct) {
		return f.EPSGrowthYoYPct, models.GrowthSourceEPS
	}
	if validValue(f.RevenueGrowthYoYPct) {
		return f.RevenueGrowthYoYPct, models.GrowthSourceRevenue
	}
	return nil, ""
}

// earningsYieldPct uses the supplied earnings yield when present, otherwise
// derives it from the P/E (100/PE).
func earningsYieldPct(f *models.StockFundamentals) *float64 {
	if validValue(f.EarningsYieldPct) {
		return f.EarningsYieldPct
	}
	if pe := preferredPE(f); pe != nil && *pe > 0 {
		return floatPtr(100 / *pe)
	}
	return nil
}
