package engine

import "math"

// Two distinct missing-value policies coexist in the engine and must not be
// merged: a missing value inside a per-metric scorer earns the neutral 0.5
// (don't penalize the unknown), while a sub-metric absent from a weighted
// composite contributes 0 to the sum. The named helpers below keep the
// asymmetry explicit at every call site.

// missingMetricScore is the per-metric neutral score for an absent value.
func missingMetricScore() float64 {
	return 0.5
}

// absentContribution is the composite-layer contribution of a missing
// sub-metric: nothing, not neutral.
func absentContribution() float64 {
	return 0
}

// validValue reports whether a metric pointer carries a usable number.
// NaN and Inf are treated as absent, never propagated.
func validValue(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// scorePositiveMetric maps a higher-is-better metric onto [0,1].
// At or above strong scores 1, at or below weak scores 0, linear between.
func scorePositiveMetric(v *float64, strong, weak float64) float64 {
	if !validValue(v) {
		return missingMetricScore()
	}
	val := *v
	if val >= strong {
		return 1
	}
	if val <= weak {
		return 0
	}
	return (val - weak) / (strong - weak)
}

// scoreNegativeMetric maps a lower-is-better metric (e.g. debt/equity) onto
// [0,1]. At or below strong scores 1, at or above weak scores 0.
func scoreNegativeMetric(v *float64, strong, weak float64) float64 {
	if !validValue(v) {
		return missingMetricScore()
	}
	val := *v
	if val <= strong {
		return 1
	}
	if val >= weak {
		return 0
	}
	return (weak - val) / (weak - strong)
}

// clampFloat bounds v to [lo, hi]
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampInt bounds v to [lo, hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundTo1 rounds to one decimal place
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// floatPtr returns a pointer to v
func floatPtr(v float64) *float64 {
	return &v
}
