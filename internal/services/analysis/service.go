// Package analysis orchestrates the scoring engine over live market data and
// the user's stored profile and holdings.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/aurora/internal/common"
	"github.com/bobmcallan/aurora/internal/engine"
	"github.com/bobmcallan/aurora/internal/interfaces"
	"github.com/bobmcallan/aurora/internal/models"
)

// maxPriceFetchConcurrency bounds parallel feed calls when pricing holdings
const maxPriceFetchConcurrency = 4

// Service implements interfaces.AnalysisService.
type Service struct {
	provider interfaces.MarketDataProvider
	store    interfaces.UserStore
	engine   *engine.Engine
	logger   *common.Logger
}

var _ interfaces.AnalysisService = (*Service)(nil)

// NewService creates an analysis service.
func NewService(provider interfaces.MarketDataProvider, store interfaces.UserStore, eng *engine.Engine, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		provider: provider,
		store:    store,
		engine:   eng,
		logger:   logger,
	}
}

// AnalyzeStock produces the full analysis for a ticker under the user's
// profile, with portfolio context attached when the user holds the ticker.
func (s *Service) AnalyzeStock(ctx context.Context, userID, ticker string) (*models.AnalysisResult, error) {
	analysis, _, _, err := s.analyze(ctx, userID, ticker)
	return analysis, err
}

// Recommend produces the portfolio-aware recommendation for a ticker.
func (s *Service) Recommend(ctx context.Context, userID, ticker string) (*models.ActiveManagerRecommendation, error) {
	analysis, profile, pctx, err := s.analyze(ctx, userID, ticker)
	if err != nil {
		return nil, err
	}
	rec, err := s.engine.Recommend(analysis, profile, pctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no recommendation available for '%s'", ticker)
	}
	return rec, nil
}

// analyze fetches inputs in parallel and runs the engine once.
func (s *Service) analyze(ctx context.Context, userID, ticker string) (*models.AnalysisResult, *models.UserProfile, *models.PortfolioContext, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, nil, nil, fmt.Errorf("ticker is required: %w", common.ErrInvalidInput)
	}
	if strings.TrimSpace(userID) == "" {
		return nil, nil, nil, fmt.Errorf("user id is required: %w", common.ErrInvalidInput)
	}
	start := time.Now()

	var (
		stock    *models.StockData
		profile  *models.UserProfile
		holdings []*models.PortfolioHolding
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stock, err = s.provider.GetStockData(gctx, ticker)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.store.GetProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		holdings, err = s.store.GetHoldings(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	analysis, err := s.engine.Analyze(stock, profile)
	if err != nil {
		return nil, nil, nil, err
	}

	pctx := s.buildPortfolioContext(ctx, ticker, stock, holdings, analysis.Summary.ConvictionScore3m)
	analysis.Portfolio = pctx

	s.logger.Debug().
		Str("ticker", ticker).
		Str("user_id", userID).
		Int("risk_score", analysis.Summary.RiskScore).
		Dur("elapsed", time.Since(start)).
		Msg("Analysis completed")
	return analysis, profile, pctx, nil
}

// buildPortfolioContext prices the user's holdings and derives the analyzed
// ticker's weight and suggested action. Returns nil when the user has no
// holdings at all; holding other tickers but not this one still yields a
// context with zero weight.
func (s *Service) buildPortfolioContext(ctx context.Context, ticker string, stock *models.StockData, holdings []*models.PortfolioHolding, conviction int) *models.PortfolioContext {
	if len(holdings) == 0 {
		return nil
	}

	values := s.priceHoldings(ctx, holdings)

	var totalValue, totalCost, positionValue float64
	var held *models.PortfolioHolding
	for i, h := range holdings {
		totalValue += values[i]
		totalCost += h.Shares * h.AverageCostBasis
		if strings.EqualFold(h.Ticker, ticker) {
			held = h
			positionValue = values[i]
			// Prefer the price already fetched for the analyzed ticker
			if p := currentPrice(stock); p != nil {
				positionValue = h.Shares * *p
				totalValue += positionValue - values[i]
			}
		}
	}

	pctx := &models.PortfolioContext{
		Holding: held,
		Metrics: &models.PortfolioMetrics{
			TotalValue:    totalValue,
			TotalCost:     totalCost,
			TotalGainLoss: totalValue - totalCost,
		},
	}
	if totalCost > 0 {
		pctx.Metrics.TotalGainLossPct = (totalValue - totalCost) / totalCost * 100
	}
	if totalValue > 0 {
		pctx.PositionWeightPct = positionValue / totalValue * 100
	}
	pctx.SuggestedAction = s.engine.SuggestPortfolioAction(ticker, pctx, conviction)
	return pctx
}

// priceHoldings fetches a current price per holding with bounded
// concurrency. A holding whose price cannot be fetched falls back to its
// cost basis rather than failing the whole analysis.
func (s *Service) priceHoldings(ctx context.Context, holdings []*models.PortfolioHolding) []float64 {
	values := make([]float64, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPriceFetchConcurrency)
	var mu sync.Mutex
	for i, h := range holdings {
		g.Go(func() error {
			value := h.Shares * h.AverageCostBasis
			if stock, err := s.provider.GetStockData(gctx, h.Ticker); err == nil {
				if p := currentPrice(stock); p != nil {
					value = h.Shares * *p
				}
			} else {
				s.logger.Warn().Str("ticker", h.Ticker).Err(err).Msg("Falling back to cost basis for holding")
			}
			mu.Lock()
			values[i] = value
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return values
}

func currentPrice(stock *models.StockData) *float64 {
	if stock == nil || stock.Technicals == nil {
		return nil
	}
	return stock.Technicals.Price
}

// AnalyzeHistory computes returns, volatility, and trend for a period.
func (s *Service) AnalyzeHistory(ctx context.Context, ticker string, period models.Period) (*models.HistoryAnalysis, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required: %w", common.ErrInvalidInput)
	}
	if period.Months() == 0 {
		return nil, fmt.Errorf("unsupported period '%s', use 1M, 3M, 6M, 1Y, or 5Y: %w", period, common.ErrInvalidInput)
	}

	data, err := s.provider.GetHistoricalData(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	cleaned := engine.SanitizeSeries(data.DataPoints)
	data.DataPoints = cleaned

	return &models.HistoryAnalysis{
		Ticker:        ticker,
		Period:        period,
		Returns:       engine.CalculateReturns(data),
		VolatilityPct: engine.CalculateVolatility(data),
		Trend:         engine.DetectTrend(data),
		DataPoints:    len(cleaned),
	}, nil
}

// PortfolioOverview summarizes the user's allocations and concentration.
func (s *Service) PortfolioOverview(ctx context.Context, userID string) (*models.PortfolioOverview, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required: %w", common.ErrInvalidInput)
	}

	holdings, err := s.store.GetHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	overview := &models.PortfolioOverview{}
	if len(holdings) == 0 {
		overview.Concentration = s.engine.DetectConcentrationRisk(nil)
		return overview, nil
	}

	values := s.priceHoldings(ctx, holdings)

	var totalValue, totalCost float64
	for i, h := range holdings {
		totalValue += values[i]
		totalCost += h.Shares * h.AverageCostBasis
	}
	overview.Metrics = models.PortfolioMetrics{
		TotalValue:    totalValue,
		TotalCost:     totalCost,
		TotalGainLoss: totalValue - totalCost,
	}
	if totalCost > 0 {
		overview.Metrics.TotalGainLossPct = (totalValue - totalCost) / totalCost * 100
	}

	for i, h := range holdings {
		alloc := models.Allocation{Ticker: h.Ticker}
		if totalValue > 0 {
			alloc.WeightPct = values[i] / totalValue * 100
		}
		overview.Allocations = append(overview.Allocations, alloc)
	}
	sort.SliceStable(overview.Allocations, func(i, j int) bool {
		return overview.Allocations[i].WeightPct > overview.Allocations[j].WeightPct
	})

	overview.Concentration = s.engine.DetectConcentrationRisk(overview.Allocations)
	return overview, nil
}
