// Package interfaces defines service contracts for Aurora
package interfaces

import (
	"context"

	"github.com/bobmcallan/aurora/internal/models"
)

// MarketDataProvider supplies the raw per-ticker inputs the engine scores.
// Implementations return descriptive errors for unknown tickers and leave
// fields nil when the upstream feed has no value for them.
type MarketDataProvider interface {
	// GetStockData retrieves fundamentals, technicals, and sentiment
	GetStockData(ctx context.Context, ticker string) (*models.StockData, error)

	// GetHistoricalData retrieves a price series for the period
	GetHistoricalData(ctx context.Context, ticker string, period models.Period) (*models.HistoricalData, error)
}
