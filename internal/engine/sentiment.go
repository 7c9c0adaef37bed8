package engine

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/aurora/internal/models"
)

// Target gap thresholds: analyst mean target more than 15% above price reads
// as significant upside, more than 15% below as downside risk.
const targetGapThresholdPct = 15.0

// maxNewsThemes caps how many news themes make the highlight string
const maxNewsThemes = 3

// AnalyzeSentiment maps analyst consensus, target price gap, and news themes
// into a classified read. Missing inputs degrade, never fail.
func AnalyzeSentiment(s *models.StockSentiment, price *float64) *models.SentimentRead {
	read := &models.SentimentRead{
		ConsensusLabel: "No analyst consensus available",
		TargetGap:      models.GapUnknown,
		NewsHighlight:  "No notable news themes.",
	}
	if s == nil {
		return read
	}

	if s.Consensus != "" {
		read.ConsensusLabel = consensusLabel(s.Consensus)
	}
	read.TargetGap, read.UpsidePct = classifyTargetGap(s.TargetMeanPrice, price)
	read.NewsHighlight = newsHighlight(s.NewsThemes)
	return read
}

// consensusLabel maps the 5-value consensus enum to a display label.
// The switch is exhaustive over AnalystConsensus values.
func consensusLabel(c models.AnalystConsensus) string {
	switch c {
	case models.ConsensusStrongBuy:
		return "Analysts rate this a strong buy"
	case models.ConsensusBuy:
		return "Analysts lean buy"
	case models.ConsensusHold:
		return "Analysts rate this a hold"
	case models.ConsensusSell:
		return "Analysts lean sell"
	case models.ConsensusStrongSell:
		return "Analysts rate this a strong sell"
	default:
		return "No analyst consensus available"
	}
}

func classifyTargetGap(target, price *float64) (models.TargetGap, *float64) {
	if !validValue(target) || !validValue(price) || *price <= 0 {
		return models.GapUnknown, nil
	}
	upside := (*target - *price) / *price * 100
	pct := floatPtr(roundTo1(upside))
	switch {
	case upside > targetGapThresholdPct:
		return models.GapSignificantUpside, pct
	case upside < -targetGapThresholdPct:
		return models.GapDownsideRisk, pct
	default:
		return models.GapLimited, pct
	}
}

// newsHighlight joins the first few themes with period separation
func newsHighlight(themes []string) string {
	var kept []string
	for _, theme := range themes {
		theme = strings.TrimSpace(theme)
		if theme == "" {
			continue
		}
		kept = append(kept, strings.TrimSuffix(theme, "."))
		if len(kept) == maxNewsThemes {
			break
		}
	}
	if len(kept) == 0 {
		return "No notable news themes."
	}
	return fmt.Sprintf("%s.", strings.Join(kept, ". "))
}
