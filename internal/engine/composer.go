package engine

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/aurora/internal/models"
)

// analysisDisclaimer ships on every result. The engine is probabilistic and
// illustrative; nothing it emits is personalized financial advice.
const analysisDisclaimer = "This analysis is generated from public market data and is illustrative only. It is not personalized financial advice and must not be presented as such."

// Analyze runs every analyzer over the stock data and composes a single
// AnalysisResult. Stock data and profile are mandatory inputs; missing
// either fails fast. Missing sections inside the stock data degrade to
// unknown/neutral reads instead.
//
// GeneratedAt is stamped here, once, from the injected clock; everything else
// in the result is a pure function of the inputs.
func (e *Engine) Analyze(stock *models.StockData, profile *models.UserProfile) (*models.AnalysisResult, error) {
	if stock == nil || strings.TrimSpace(stock.Ticker) == "" {
		return nil, fmt.Errorf("stock data with a ticker is required")
	}
	if profile == nil {
		return nil, fmt.Errorf("user profile is required")
	}

	fundamentals := BuildFundamentalsInsight(stock.Fundamentals)
	valuation := BuildValuationInsight(stock.Fundamentals)

	var price *float64
	if stock.Technicals != nil {
		price = stock.Technicals.Price
	}
	technical := AnalyzeTechnicals(stock.Technicals)
	sentiment := AnalyzeSentiment(stock.Sentiment, price)

	scenarios := ProjectScenarios(profile.RiskTolerance)
	guidance := BuildPlanningGuidance(profile)

	summary := buildSummary(stock.Ticker, fundamentals, valuation, technical, sentiment)

	return &models.AnalysisResult{
		Ticker:       stock.Ticker,
		GeneratedAt:  e.now(),
		Fundamentals: fundamentals,
		Valuation:    valuation,
		Technical:    technical,
		Sentiment:    sentiment,
		Scenarios:    scenarios,
		Guidance:     guidance,
		Summary:      summary,

		FundamentalsView: fundamentalsView(fundamentals),
		ValuationView:    valuationView(valuation),
		TechnicalView:    technical.Commentary,
		SentimentView:    sentimentView(sentiment),

		Disclaimer: analysisDisclaimer,
	}, nil
}

// buildSummary derives the headline, risk score, and 3-month conviction from
// the classified reads. Risk and conviction are stock-derived only, so the
// same stock scores identically for every profile.
func buildSummary(ticker string, f *models.FundamentalsInsight, v *models.ValuationInsight, t *models.TechnicalRead, s *models.SentimentRead) models.AnalysisSummary {
	risk := 5
	conviction := 50

	switch f.Classification {
	case models.FundamentalsStrong:
		risk--
		conviction += 10
	case models.FundamentalsWeak:
		risk += 2
		conviction -= 10
	case models.FundamentalsUnknown:
		risk++
	case models.FundamentalsOK:
		// Neither direction
	}

	switch v.Classification {
	case models.ValuationCheap:
		risk--
		conviction += 10
	case models.ValuationRich:
		risk++
		conviction -= 10
	case models.ValuationUnknown, models.ValuationFair:
		// Neutral
	}

	switch t.Trend {
	case models.TrendBullish:
		conviction += 5
	case models.TrendBearish:
		risk++
		conviction -= 5
	case models.TrendNeutral:
	}
	if t.Momentum == models.MomentumOverbought || t.Momentum == models.MomentumOversold {
		risk++
	}

	switch s.TargetGap {
	case models.GapSignificantUpside:
		conviction += 5
	case models.GapDownsideRisk:
		conviction -= 5
	case models.GapLimited, models.GapUnknown:
	}

	return models.AnalysisSummary{
		HeadlineView:      headlineView(ticker, f, v, t),
		RiskScore:         clampInt(risk, 1, 10),
		ConvictionScore3m: clampInt(conviction, 0, 100),
		KeyTakeaways:      keyTakeaways(f, v, t, s),
	}
}

func headlineView(ticker string, f *models.FundamentalsInsight, v *models.ValuationInsight, t *models.TechnicalRead) string {
	return fmt.Sprintf("%s: %s fundamentals, %s valuation, %s trend",
		ticker, f.Classification, v.Classification, t.Trend)
}

func keyTakeaways(f *models.FundamentalsInsight, v *models.ValuationInsight, t *models.TechnicalRead, s *models.SentimentRead) []string {
	var takeaways []string
	if len(f.Drivers) > 0 {
		takeaways = append(takeaways, f.Drivers[0])
	}
	if len(f.CautionaryNotes) > 0 {
		takeaways = append(takeaways, f.CautionaryNotes[0])
	}
	if v.Peg != nil && v.Peg.Commentary != "" {
		takeaways = append(takeaways, v.Peg.Commentary)
	}
	if t.Trend != models.TrendNeutral {
		takeaways = append(takeaways, fmt.Sprintf("Technical trend is %s", t.Trend))
	}
	if s.UpsidePct != nil {
		takeaways = append(takeaways, fmt.Sprintf("Analyst mean target implies %+.1f%% from the current price", *s.UpsidePct))
	}
	return takeaways
}

func fundamentalsView(f *models.FundamentalsInsight) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Quality score %d/100 (%s).", f.QualityScore, f.Classification))
	if len(f.Drivers) > 0 {
		sb.WriteString(" Strengths: ")
		sb.WriteString(strings.Join(f.Drivers, "; "))
		sb.WriteString(".")
	}
	if len(f.CautionaryNotes) > 0 {
		sb.WriteString(" Watch: ")
		sb.WriteString(strings.Join(f.CautionaryNotes, "; "))
		sb.WriteString(".")
	}
	return sb.String()
}

func valuationView(v *models.ValuationInsight) string {
	var sb strings.Builder
	if v.Classification == models.ValuationUnknown {
		sb.WriteString("Valuation could not be scored from the available data.")
	} else {
		sb.WriteString(fmt.Sprintf("Valuation score %d/100 (%s).", v.ValuationScore, v.Classification))
	}
	if v.Peg != nil {
		if v.Peg.Ratio != nil {
			sb.WriteString(fmt.Sprintf(" PEG %.2f (%s, %s growth).", *v.Peg.Ratio, v.Peg.Bucket, v.Peg.GrowthSource))
		} else {
			sb.WriteString(fmt.Sprintf(" PEG %s.", v.Peg.Bucket))
		}
	}
	if v.Commentary != "" {
		sb.WriteString(" ")
		sb.WriteString(v.Commentary)
	}
	return sb.String()
}

func sentimentView(s *models.SentimentRead) string {
	var sb strings.Builder
	sb.WriteString(s.ConsensusLabel)
	sb.WriteString(". ")
	switch s.TargetGap {
	case models.GapSignificantUpside:
		sb.WriteString(fmt.Sprintf("Mean target sits %+.1f%% from price; significant upside if analysts are right. ", *s.UpsidePct))
	case models.GapDownsideRisk:
		sb.WriteString(fmt.Sprintf("Mean target sits %+.1f%% from price; downside risk flagged. ", *s.UpsidePct))
	case models.GapLimited:
		sb.WriteString("Mean target implies limited upside or downside from here. ")
	case models.GapUnknown:
		sb.WriteString("No usable price target data. ")
	}
	sb.WriteString(s.NewsHighlight)
	return sb.String()
}
