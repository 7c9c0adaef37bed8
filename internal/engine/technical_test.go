package engine

import (
	"testing"

	"github.com/bobmcallan/aurora/internal/models"
)

func TestAnalyzeTechnicals_Trend(t *testing.T) {
	tests := []struct {
		name string
		tech *models.StockTechnicals
		want models.TrendType
	}{
		{
			"bullish alignment",
			&models.StockTechnicals{Price: floatPtr(110), SMA50: floatPtr(105), SMA200: floatPtr(100)},
			models.TrendBullish,
		},
		{
			"bearish alignment",
			&models.StockTechnicals{Price: floatPtr(90), SMA50: floatPtr(95), SMA200: floatPtr(100)},
			models.TrendBearish,
		},
		{
			"mixed alignment is neutral",
			&models.StockTechnicals{Price: floatPtr(110), SMA50: floatPtr(100), SMA200: floatPtr(105)},
			models.TrendNeutral,
		},
		{
			"missing SMA200 is neutral",
			&models.StockTechnicals{Price: floatPtr(110), SMA50: floatPtr(105)},
			models.TrendNeutral,
		},
		{
			"price equal to SMA50 is neutral",
			&models.StockTechnicals{Price: floatPtr(105), SMA50: floatPtr(105), SMA200: floatPtr(100)},
			models.TrendNeutral,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read := AnalyzeTechnicals(tt.tech)
			if read.Trend != tt.want {
				t.Errorf("trend = %s, want %s", read.Trend, tt.want)
			}
		})
	}
}

func TestAnalyzeTechnicals_Momentum(t *testing.T) {
	tests := []struct {
		name string
		rsi  *float64
		want models.Momentum
	}{
		{"above 70 overbought", floatPtr(75), models.MomentumOverbought},
		{"exactly 70 neutral", floatPtr(70), models.MomentumNeutral},
		{"below 30 oversold", floatPtr(25), models.MomentumOversold},
		{"exactly 30 neutral", floatPtr(30), models.MomentumNeutral},
		{"missing neutral", nil, models.MomentumNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read := AnalyzeTechnicals(&models.StockTechnicals{RSI14: tt.rsi})
			if read.Momentum != tt.want {
				t.Errorf("momentum = %s, want %s", read.Momentum, tt.want)
			}
		})
	}
}

func TestAnalyzeTechnicals_PricePosition(t *testing.T) {
	tests := []struct {
		name  string
		tech  *models.StockTechnicals
		want  models.PricePosition
		wantP *float64
	}{
		{
			"near high",
			&models.StockTechnicals{Price: floatPtr(95), High52Week: floatPtr(100), Low52Week: floatPtr(50)},
			models.PositionNearHigh, floatPtr(90),
		},
		{
			"near low",
			&models.StockTechnicals{Price: floatPtr(55), High52Week: floatPtr(100), Low52Week: floatPtr(50)},
			models.PositionNearLow, floatPtr(10),
		},
		{
			"mid range",
			&models.StockTechnicals{Price: floatPtr(75), High52Week: floatPtr(100), Low52Week: floatPtr(50)},
			models.PositionMidRange, floatPtr(50),
		},
		{
			"missing range",
			&models.StockTechnicals{Price: floatPtr(75)},
			models.PositionUnknown, nil,
		},
		{
			"inverted range",
			&models.StockTechnicals{Price: floatPtr(75), High52Week: floatPtr(50), Low52Week: floatPtr(100)},
			models.PositionUnknown, nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read := AnalyzeTechnicals(tt.tech)
			if read.PricePosition != tt.want {
				t.Errorf("position = %s, want %s", read.PricePosition, tt.want)
			}
			if (read.RangePercentile == nil) != (tt.wantP == nil) {
				t.Fatalf("percentile presence = %v, want %v", read.RangePercentile, tt.wantP)
			}
			if tt.wantP != nil && *read.RangePercentile != *tt.wantP {
				t.Errorf("percentile = %v, want %v", *read.RangePercentile, *tt.wantP)
			}
		})
	}
}

func TestAnalyzeTechnicals_NilInput(t *testing.T) {
	read := AnalyzeTechnicals(nil)
	if read.Trend != models.TrendNeutral {
		t.Errorf("trend = %s, want neutral", read.Trend)
	}
	if read.Momentum != models.MomentumNeutral {
		t.Errorf("momentum = %s, want neutral", read.Momentum)
	}
	if read.PricePosition != models.PositionUnknown {
		t.Errorf("position = %s, want unknown", read.PricePosition)
	}
	if read.Commentary == "" {
		t.Error("expected placeholder commentary")
	}
}
