package engine

import (
	"math"
	"testing"
	"time"

	"github.com/bobmcallan/aurora/internal/models"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func series(prices ...float64) []models.PricePoint {
	points := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = models.PricePoint{Date: day(i), Price: p}
	}
	return points
}

func TestSanitizeSeries(t *testing.T) {
	points := []models.PricePoint{
		{Date: day(2), Price: 103},
		{Date: day(0), Price: 100},
		{Date: day(1), Price: -5},          // dropped
		{Date: day(1), Price: math.NaN()},  // dropped
		{Date: day(1), Price: 101},
		{Date: day(1), Price: 102},         // same date, last wins
		{Price: 999},                       // zero date, dropped
	}
	cleaned := SanitizeSeries(points)

	if len(cleaned) != 3 {
		t.Fatalf("len = %d, want 3", len(cleaned))
	}
	for i := 1; i < len(cleaned); i++ {
		if !cleaned[i-1].Date.Before(cleaned[i].Date) {
			t.Fatal("series not sorted ascending")
		}
	}
	if cleaned[1].Price != 102 {
		t.Errorf("duplicate date resolved to %v, want last-wins 102", cleaned[1].Price)
	}
}

func TestCalculateReturns(t *testing.T) {
	data := &models.HistoricalData{
		Ticker:     "AAPL",
		Period:     models.Period3M,
		DataPoints: series(100, 104, 110),
	}
	returns := CalculateReturns(data)

	if returns.SimpleReturnPct != 10 {
		t.Errorf("simple return = %v, want 10", returns.SimpleReturnPct)
	}
	// 10% over a quarter compounds to (1.1)^4 - 1 annualized
	wantAnnualized := roundTo1((math.Pow(1.1, 4) - 1) * 100)
	if returns.AnnualizedReturnPct != wantAnnualized {
		t.Errorf("annualized return = %v, want %v", returns.AnnualizedReturnPct, wantAnnualized)
	}
}

func TestCalculateReturns_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		data *models.HistoricalData
	}{
		{"nil data", nil},
		{"empty series", &models.HistoricalData{Period: models.Period1Y}},
		{"single point", &models.HistoricalData{Period: models.Period1Y, DataPoints: series(100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			returns := CalculateReturns(tt.data)
			if returns.SimpleReturnPct != 0 || returns.AnnualizedReturnPct != 0 {
				t.Errorf("expected zero returns, got %+v", returns)
			}
		})
	}
}

func TestCalculateReturns_UnknownPeriodSkipsAnnualization(t *testing.T) {
	data := &models.HistoricalData{
		Period:     models.Period("2W"),
		DataPoints: series(100, 110),
	}
	returns := CalculateReturns(data)
	if returns.SimpleReturnPct != 10 {
		t.Errorf("simple return = %v, want 10", returns.SimpleReturnPct)
	}
	if returns.AnnualizedReturnPct != 0 {
		t.Errorf("annualized return = %v, want 0 for unknown period", returns.AnnualizedReturnPct)
	}
}

func TestCalculateVolatility(t *testing.T) {
	choppy := &models.HistoricalData{
		Period:     models.Period1M,
		DataPoints: series(100, 110, 100, 110, 100, 110),
	}
	if v := CalculateVolatility(choppy); v <= 0 {
		t.Errorf("volatility = %v, want > 0 for a choppy series", v)
	}

	flat := &models.HistoricalData{
		Period:     models.Period1M,
		DataPoints: series(100, 100, 100, 100),
	}
	if v := CalculateVolatility(flat); v != 0 {
		t.Errorf("volatility = %v, want 0 for a flat series", v)
	}

	if v := CalculateVolatility(nil); v != 0 {
		t.Errorf("volatility = %v, want 0 for nil data", v)
	}
}

func TestDetectTrend(t *testing.T) {
	up := make([]float64, 22)
	down := make([]float64, 22)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 121 - float64(i)
	}

	tests := []struct {
		name   string
		prices []float64
		want   models.TrendDirection
	}{
		{"steady climb", up, models.TrendUp},
		{"steady decline", down, models.TrendDown},
		{"small move stays sideways", []float64{100, 101, 100.5, 101.5, 102}, models.TrendSideways},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := DetectTrend(&models.HistoricalData{
				Period:     models.Period3M,
				DataPoints: series(tt.prices...),
			})
			if report.Direction != tt.want {
				t.Errorf("direction = %s, want %s (change %.1f%%, slope %.3f, breadth %.2f)",
					report.Direction, tt.want, report.ChangePct, report.Slope, report.Breadth)
			}
		})
	}
}

func TestDetectTrend_BreadthVetoesDirection(t *testing.T) {
	// Big final gap up, but most days decline: change and slope say up,
	// breadth says the move was one spike.
	prices := []float64{100, 99, 98, 97, 96, 95, 94, 93, 92, 130}
	report := DetectTrend(&models.HistoricalData{
		Period:     models.Period3M,
		DataPoints: series(prices...),
	})
	if report.Direction != models.TrendSideways {
		t.Errorf("direction = %s, want sideways when breadth disagrees", report.Direction)
	}
	if report.Breadth >= trendBreadthThreshold {
		t.Errorf("breadth = %v, fixture should sit below %v", report.Breadth, trendBreadthThreshold)
	}
}

func TestDetectTrend_DegenerateInputs(t *testing.T) {
	if report := DetectTrend(nil); report.Direction != models.TrendSideways {
		t.Errorf("nil data: direction = %s, want sideways", report.Direction)
	}
	report := DetectTrend(&models.HistoricalData{Period: models.Period1M, DataPoints: series(100)})
	if report.Direction != models.TrendSideways {
		t.Errorf("single point: direction = %s, want sideways", report.Direction)
	}
}
