package engine

import (
	"strings"
	"testing"

	"github.com/bobmcallan/aurora/internal/models"
)

func TestDetectConcentrationRisk(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		name        string
		allocations []models.Allocation
		level       models.ExposureLevel
		flagged     int
	}{
		{"no holdings", nil, models.ExposureLow, 0},
		{
			"diversified",
			[]models.Allocation{{Ticker: "AAPL", WeightPct: 10}, {Ticker: "MSFT", WeightPct: 8}},
			models.ExposureLow, 0,
		},
		{
			"one position over the single-name limit",
			[]models.Allocation{{Ticker: "AAPL", WeightPct: 22}, {Ticker: "MSFT", WeightPct: 8}},
			models.ExposureModerate, 1,
		},
		{
			"top position past the sell ceiling",
			[]models.Allocation{{Ticker: "AAPL", WeightPct: 30}, {Ticker: "MSFT", WeightPct: 21}},
			models.ExposureHigh, 2,
		},
		{
			"exactly at the limit is not flagged",
			[]models.Allocation{{Ticker: "AAPL", WeightPct: 20}},
			models.ExposureLow, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := e.DetectConcentrationRisk(tt.allocations)
			if report.Level != tt.level {
				t.Errorf("level = %s, want %s", report.Level, tt.level)
			}
			if len(report.Flagged) != tt.flagged {
				t.Errorf("flagged = %d, want %d", len(report.Flagged), tt.flagged)
			}
		})
	}
}

func TestDetectConcentrationRisk_LargestPositions(t *testing.T) {
	e := New(DefaultConfig())
	report := e.DetectConcentrationRisk([]models.Allocation{
		{Ticker: "A", WeightPct: 5},
		{Ticker: "B", WeightPct: 15},
		{Ticker: "C", WeightPct: 10},
		{Ticker: "D", WeightPct: 2},
	})

	if len(report.LargestPositions) != maxLargestPositions {
		t.Fatalf("largest = %d, want %d", len(report.LargestPositions), maxLargestPositions)
	}
	if report.LargestPositions[0].Ticker != "B" || report.LargestPositions[2].Ticker != "A" {
		t.Errorf("largest positions out of order: %+v", report.LargestPositions)
	}
}

func TestSuggestPortfolioAction(t *testing.T) {
	e := New(DefaultConfig())
	holding := &models.PortfolioHolding{Ticker: "AAPL", Shares: 100}

	tests := []struct {
		name       string
		pctx       *models.PortfolioContext
		conviction int
		want       models.RecommendedAction
		fragment   string
	}{
		{
			"weight at the sell threshold",
			&models.PortfolioContext{Holding: holding, PositionWeightPct: 25},
			90, models.ActionSell, "sell threshold",
		},
		{
			"weight at the trim threshold",
			&models.PortfolioContext{Holding: holding, PositionWeightPct: 20},
			90, models.ActionTrim, "trim threshold",
		},
		{
			"no position with high conviction",
			&models.PortfolioContext{}, 70, models.ActionBuy, "buy threshold",
		},
		{
			"no position with middling conviction",
			&models.PortfolioContext{}, 50, models.ActionHold, "below",
		},
		{
			"tiny position with decent conviction accumulates",
			&models.PortfolioContext{Holding: holding, PositionWeightPct: 1},
			55, models.ActionBuy, "accumulate",
		},
		{
			"established position with collapsed conviction",
			&models.PortfolioContext{Holding: holding, PositionWeightPct: 10},
			20, models.ActionTrim, "low-conviction",
		},
		{
			"established position inside normal bands",
			&models.PortfolioContext{Holding: holding, PositionWeightPct: 10},
			55, models.ActionHold, "normal bands",
		},
		{
			"nil context treated as no position",
			nil, 70, models.ActionBuy, "buy threshold",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := e.SuggestPortfolioAction("AAPL", tt.pctx, tt.conviction)
			if action.Action != tt.want {
				t.Errorf("action = %s, want %s", action.Action, tt.want)
			}
			if len(action.Reasoning) == 0 {
				t.Fatal("expected reasoning")
			}
			if !strings.Contains(strings.Join(action.Reasoning, " "), tt.fragment) {
				t.Errorf("reasoning %v missing %q", action.Reasoning, tt.fragment)
			}
		})
	}
}

func TestSuggestPortfolioAction_WeightBeatsConviction(t *testing.T) {
	e := New(DefaultConfig())
	pctx := &models.PortfolioContext{
		Holding:           &models.PortfolioHolding{Ticker: "NVDA", Shares: 50},
		PositionWeightPct: 30,
	}
	action := e.SuggestPortfolioAction("NVDA", pctx, 100)
	if action.Action != models.ActionSell {
		t.Errorf("action = %s, want sell regardless of conviction", action.Action)
	}
}
