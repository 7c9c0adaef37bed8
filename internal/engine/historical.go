package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/bobmcallan/aurora/internal/models"
)

// tradingDaysPerYear is the annualization factor for daily volatility
const tradingDaysPerYear = 252

// trendBreadthThreshold is the advance/decline breadth needed to confirm a
// directional trend (0.55 advancing for up, 0.45 or less for down).
const trendBreadthThreshold = 0.55

// SanitizeSeries prepares a price series for analytics: drops points with
// non-positive or non-finite prices, de-duplicates by calendar date (last one
// wins), and sorts ascending by date. Callers run this before any calculation.
func SanitizeSeries(points []models.PricePoint) []models.PricePoint {
	byDate := make(map[string]models.PricePoint, len(points))
	for _, p := range points {
		if p.Date.IsZero() || p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			continue
		}
		byDate[p.Date.Format("2006-01-02")] = p
	}
	cleaned := make([]models.PricePoint, 0, len(byDate))
	for _, p := range byDate {
		cleaned = append(cleaned, p)
	}
	sort.Slice(cleaned, func(i, j int) bool { return cleaned[i].Date.Before(cleaned[j].Date) })
	return cleaned
}

// CalculateReturns computes the simple return from first to last price and
// annualizes it as a CAGR over the period's month span. Fewer than 2 points
// yields zeros, not an error.
func CalculateReturns(data *models.HistoricalData) models.HistoricalReturns {
	if data == nil {
		return models.HistoricalReturns{}
	}
	points := SanitizeSeries(data.DataPoints)
	if len(points) < 2 {
		return models.HistoricalReturns{}
	}

	first := points[0].Price
	last := points[len(points)-1].Price
	simple := (last - first) / first * 100

	months := data.Period.Months()
	if months <= 0 {
		return models.HistoricalReturns{SimpleReturnPct: roundTo1(simple)}
	}

	years := float64(months) / 12
	annualized := (math.Pow(last/first, 1/years) - 1) * 100

	return models.HistoricalReturns{
		SimpleReturnPct:     roundTo1(simple),
		AnnualizedReturnPct: roundTo1(annualized),
	}
}

// CalculateVolatility returns annualized volatility as a percentage: the
// standard deviation of daily simple returns scaled by sqrt(252).
func CalculateVolatility(data *models.HistoricalData) float64 {
	if data == nil {
		return 0
	}
	points := SanitizeSeries(data.DataPoints)
	if len(points) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		returns = append(returns, (points[i].Price-points[i-1].Price)/points[i-1].Price)
	}
	if len(returns) < 2 {
		return 0
	}

	return roundTo1(stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear) * 100)
}

// DetectTrend classifies the series direction. An uptrend needs the overall
// change to clear the period threshold, a positive least-squares slope of
// price against index, and advancing-day breadth of at least 0.55; a
// downtrend mirrors all three. Anything else is sideways.
func DetectTrend(data *models.HistoricalData) models.TrendReport {
	report := models.TrendReport{Direction: models.TrendSideways}
	if data == nil {
		return report
	}
	points := SanitizeSeries(data.DataPoints)
	if len(points) < 2 {
		return report
	}

	first := points[0].Price
	last := points[len(points)-1].Price
	report.ChangePct = roundTo1((last - first) / first * 100)

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	advances := 0
	moves := 0
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Price
		if i > 0 && p.Price != points[i-1].Price {
			moves++
			if p.Price > points[i-1].Price {
				advances++
			}
		}
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	report.Slope = slope
	if moves > 0 {
		report.Breadth = float64(advances) / float64(moves)
	} else {
		report.Breadth = 0.5
	}

	threshold := data.Period.TrendChangeThresholdPct()
	switch {
	case report.ChangePct >= threshold && slope > 0 && report.Breadth >= trendBreadthThreshold:
		report.Direction = models.TrendUp
	case report.ChangePct <= -threshold && slope < 0 && report.Breadth <= 1-trendBreadthThreshold:
		report.Direction = models.TrendDown
	}
	return report
}
