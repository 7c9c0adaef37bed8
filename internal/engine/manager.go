package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/bobmcallan/aurora/internal/models"
)

// returnBias classifies the scenario point estimate
type returnBias int

const (
	biasNeutral returnBias = iota
	biasPositive
	biasNegative
)

// defaultConviction is assumed when the analysis carries no conviction score
const defaultConviction = 50

// Recommend merges an analysis, the user profile, and optional portfolio
// context into one active-manager recommendation.
//
// The action is computed in stages that may only downgrade risk exposure:
// return bias, base action, risk guardrails, portfolio override (guardrails
// re-applied afterwards; they are the final authority), then profile
// adjustment. Confidence is scored last and clamped to [0,100].
//
// A nil analysis or missing ticker is a soft failure: the recommendation is
// an optional augmentation, so (nil, nil) is returned and the caller decides
// the fallback. A nil profile is a hard failure; profile is mandatory
// context everywhere in the engine.
func (e *Engine) Recommend(analysis *models.AnalysisResult, profile *models.UserProfile, pctx *models.PortfolioContext) (*models.ActiveManagerRecommendation, error) {
	if profile == nil {
		return nil, fmt.Errorf("user profile is required")
	}
	if analysis == nil || strings.TrimSpace(analysis.Ticker) == "" {
		return nil, nil
	}

	point := 0.0
	var expectedReturn *float64
	if analysis.Scenarios != nil {
		point = analysis.Scenarios.PointEstimateReturnPct
		expectedReturn = floatPtr(point)
	}
	risk := analysis.Summary.RiskScore
	weight := 0.0
	if pctx != nil {
		weight = pctx.PositionWeightPct
	}

	var rationale, riskFlags, notes []string

	// Stage 1-2: return bias and base action
	bias := e.classifyBias(point)
	action := e.baseAction(bias, point)
	rationale = append(rationale, baseActionRationale(bias, point))

	// Stage 3: risk guardrails
	action, riskFlags = e.applyGuardrails(action, risk, weight, riskFlags)

	// Stage 4: portfolio override; adopt the action engine's view, then
	// re-apply the guardrails on top of it
	if pctx != nil {
		conviction := analysis.Summary.ConvictionScore3m
		if conviction <= 0 {
			conviction = defaultConviction
		}
		suggestion := e.SuggestPortfolioAction(analysis.Ticker, pctx, conviction)
		action = suggestion.Action
		rationale = append(rationale, suggestion.Reasoning...)
		action, riskFlags = e.applyGuardrails(action, risk, weight, riskFlags)
		notes = append(notes, fmt.Sprintf("Existing position weight %.1f%% considered.", weight))
	}

	// Stage 5: profile adjustment
	if profile.RiskTolerance == models.RiskToleranceLow && action == models.ActionBuy && bias != biasPositive {
		action = models.ActionHold
		notes = append(notes, "Held back from buy: low risk tolerance without a positive return bias.")
	}
	if profile.RiskTolerance == models.RiskToleranceHigh && action == models.ActionTrim && bias != biasNegative {
		action = models.ActionHold
		notes = append(notes, "Trim relaxed to hold: high risk tolerance without a negative return bias.")
	}

	// Stage 6: confidence score
	confidence := e.scoreConfidence(analysis.Summary.ConvictionScore3m, bias, risk, weight, profile.RiskTolerance)

	if analysis.Scenarios != nil {
		notes = append(notes, analysis.Scenarios.UncertaintyComment)
	}

	return &models.ActiveManagerRecommendation{
		Ticker:              analysis.Ticker,
		PrimaryAction:       action,
		Horizon:             models.RecommendationHorizonFor(profile.Horizon),
		ConfidenceScore:     confidence,
		ExpectedReturn3mPct: expectedReturn,
		Headline:            fmt.Sprintf("%s – %+.1f%% expected over 3M", actionLabel(action), point),
		Rationale:           dedupeStrings(rationale),
		RiskFlags:           dedupeStrings(riskFlags),
		Notes:               dedupeStrings(notes),
	}, nil
}

func (e *Engine) classifyBias(point float64) returnBias {
	switch {
	case point >= e.cfg.PositiveBiasPct:
		return biasPositive
	case point <= e.cfg.NegativeBiasPct:
		return biasNegative
	default:
		return biasNeutral
	}
}

func (e *Engine) baseAction(bias returnBias, point float64) models.RecommendedAction {
	switch bias {
	case biasPositive:
		return models.ActionBuy
	case biasNegative:
		if point <= e.cfg.SellBiasPct {
			return models.ActionSell
		}
		return models.ActionTrim
	default:
		return models.ActionHold
	}
}

func baseActionRationale(bias returnBias, point float64) string {
	switch bias {
	case biasPositive:
		return fmt.Sprintf("Probability-weighted 3-month estimate of %+.1f%% supports adding exposure", point)
	case biasNegative:
		return fmt.Sprintf("Probability-weighted 3-month estimate of %+.1f%% argues for reducing exposure", point)
	default:
		return fmt.Sprintf("Probability-weighted 3-month estimate of %+.1f%% is too small to act on", point)
	}
}

// applyGuardrails enforces the risk rules in order. Each rule only downgrades
// exposure; buy can become hold, hold can become trim, never the reverse.
func (e *Engine) applyGuardrails(action models.RecommendedAction, risk int, weight float64, flags []string) (models.RecommendedAction, []string) {
	if risk >= e.cfg.HighRiskScore && action == models.ActionBuy {
		action = models.ActionHold
		flags = append(flags, fmt.Sprintf("Risk score %d/10 blocks new buying", risk))
	}
	if weight >= e.cfg.TrimWeightPct && action == models.ActionBuy {
		action = models.ActionHold
		flags = append(flags, fmt.Sprintf("Position already %.1f%% of portfolio, at or above the %.0f%% limit for adding", weight, e.cfg.TrimWeightPct))
	}
	if weight >= e.cfg.SellWeightPct && action == models.ActionHold {
		action = models.ActionTrim
		flags = append(flags, fmt.Sprintf("Position %.1f%% of portfolio exceeds the %.0f%% concentration ceiling", weight, e.cfg.SellWeightPct))
	}
	return action, flags
}

// scoreConfidence builds the confidence score from conviction plus bias,
// risk, weight, and tolerance adjustments, clamped to [0,100].
func (e *Engine) scoreConfidence(conviction int, bias returnBias, risk int, weight float64, tolerance models.RiskTolerance) int {
	score := float64(conviction)
	if conviction <= 0 {
		score = defaultConviction
	}

	switch bias {
	case biasPositive:
		score += 5
	case biasNegative:
		score -= 10
	case biasNeutral:
	}

	switch {
	case risk >= e.cfg.HighRiskScore:
		score -= 15
	case risk >= e.cfg.ElevatedRiskScore:
		score -= 5
	}

	if weight >= e.cfg.TrimWeightPct {
		score -= 10
	}

	if tolerance == models.RiskToleranceHigh && bias == biasPositive && risk < e.cfg.HighRiskScore {
		score += 5
	}
	if tolerance == models.RiskToleranceLow && bias == biasPositive {
		score -= 5
	}

	return clampInt(int(math.Round(clampFloat(score, 0, 100))), 0, 100)
}

func actionLabel(a models.RecommendedAction) string {
	switch a {
	case models.ActionBuy:
		return "Buy"
	case models.ActionHold:
		return "Hold"
	case models.ActionTrim:
		return "Trim"
	case models.ActionSell:
		return "Sell"
	default:
		return "Hold"
	}
}

// dedupeStrings removes exact duplicates while preserving first-seen order
func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
