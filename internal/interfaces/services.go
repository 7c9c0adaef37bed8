package interfaces

import (
	"context"

	"github.com/bobmcallan/aurora/internal/models"
)

// AnalysisService is the application-level surface over the scoring engine:
// it fetches market data, loads the user's profile and holdings, and runs the
// engine's composers.
type AnalysisService interface {
	// AnalyzeStock produces the full analysis for a ticker under the user's
	// profile. Portfolio context is attached when the user holds the ticker.
	AnalyzeStock(ctx context.Context, userID, ticker string) (*models.AnalysisResult, error)

	// Recommend produces the portfolio-aware recommendation for a ticker
	Recommend(ctx context.Context, userID, ticker string) (*models.ActiveManagerRecommendation, error)

	// AnalyzeHistory computes returns, volatility, and trend for a period
	AnalyzeHistory(ctx context.Context, ticker string, period models.Period) (*models.HistoryAnalysis, error)

	// PortfolioOverview summarizes the user's allocations and concentration
	PortfolioOverview(ctx context.Context, userID string) (*models.PortfolioOverview, error)
}
