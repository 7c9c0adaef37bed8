package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/aurora/internal/common"
	"github.com/bobmcallan/aurora/internal/engine"
	"github.com/bobmcallan/aurora/internal/models"
)

func fp(v float64) *float64 { return &v }

// fakeProvider serves canned stock data keyed by ticker
type fakeProvider struct {
	stocks  map[string]*models.StockData
	history map[string]*models.HistoricalData
}

func (f *fakeProvider) GetStockData(ctx context.Context, ticker string) (*models.StockData, error) {
	stock, ok := f.stocks[ticker]
	if !ok {
		return nil, fmt.Errorf("ticker '%s' not found in feed: %w", ticker, common.ErrNotFound)
	}
	return stock, nil
}

func (f *fakeProvider) GetHistoricalData(ctx context.Context, ticker string, period models.Period) (*models.HistoricalData, error) {
	data, ok := f.history[ticker]
	if !ok {
		return nil, fmt.Errorf("history for ticker '%s' in feed: %w", ticker, common.ErrNotFound)
	}
	data.Ticker = ticker
	data.Period = period
	return data, nil
}

// fakeStore is an in-memory UserStore
type fakeStore struct {
	profiles map[string]*models.UserProfile
	holdings map[string][]*models.PortfolioHolding
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[string]*models.UserProfile),
		holdings: make(map[string][]*models.PortfolioHolding),
	}
}

func (f *fakeStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile for user '%s': %w", userID, common.ErrNotFound)
	}
	return p, nil
}

func (f *fakeStore) SaveProfile(ctx context.Context, userID string, profile *models.UserProfile) error {
	f.profiles[userID] = profile
	return nil
}

func (f *fakeStore) DeleteProfile(ctx context.Context, userID string) error {
	delete(f.profiles, userID)
	return nil
}

func (f *fakeStore) GetHoldings(ctx context.Context, userID string) ([]*models.PortfolioHolding, error) {
	return f.holdings[userID], nil
}

func (f *fakeStore) GetHolding(ctx context.Context, userID, ticker string) (*models.PortfolioHolding, error) {
	for _, h := range f.holdings[userID] {
		if h.Ticker == ticker {
			return h, nil
		}
	}
	return nil, fmt.Errorf("holding in '%s' for user '%s': %w", ticker, userID, common.ErrNotFound)
}

func (f *fakeStore) SaveHolding(ctx context.Context, userID string, holding *models.PortfolioHolding) error {
	f.holdings[userID] = append(f.holdings[userID], holding)
	return nil
}

func (f *fakeStore) DeleteHolding(ctx context.Context, userID, ticker string) error {
	return nil
}

func (f *fakeStore) Close() error { return nil }

func testStock(ticker string, price float64) *models.StockData {
	return &models.StockData{
		Ticker: ticker,
		Name:   ticker + " Corp",
		Fundamentals: &models.StockFundamentals{
			ForwardPE:            fp(18),
			EPSGrowthYoYPct:      fp(15),
			NetMarginPct:         fp(22),
			FreeCashFlowYieldPct: fp(5),
			ReturnOnEquityPct:    fp(24),
			DebtToEquity:         fp(0.5),
		},
		Technicals: &models.StockTechnicals{
			Price:  fp(price),
			SMA50:  fp(price * 0.95),
			SMA200: fp(price * 0.9),
			RSI14:  fp(55),
		},
		Sentiment: &models.StockSentiment{
			Consensus:       models.ConsensusBuy,
			TargetMeanPrice: fp(price * 1.15),
		},
	}
}

func moderateProfile() *models.UserProfile {
	return &models.UserProfile{
		RiskTolerance: models.RiskToleranceModerate,
		Horizon:       models.HorizonMedium,
		Objective:     models.ObjectiveBalanced,
	}
}

func newTestService(provider *fakeProvider, store *fakeStore) *Service {
	eng := engine.New(engine.DefaultConfig(), engine.WithClock(func() time.Time {
		return time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	}))
	return NewService(provider, store, eng, common.NewSilentLogger())
}

func TestService_AnalyzeStock(t *testing.T) {
	provider := &fakeProvider{stocks: map[string]*models.StockData{
		"AAPL": testStock("AAPL", 200),
		"MSFT": testStock("MSFT", 400),
	}}
	store := newFakeStore()
	store.profiles["u1"] = moderateProfile()
	store.holdings["u1"] = []*models.PortfolioHolding{
		{Ticker: "AAPL", Shares: 10, AverageCostBasis: 150},
		{Ticker: "MSFT", Shares: 10, AverageCostBasis: 300},
	}

	svc := newTestService(provider, store)
	result, err := svc.AnalyzeStock(context.Background(), "u1", "aapl")
	if err != nil {
		t.Fatalf("AnalyzeStock() error: %v", err)
	}

	if result.Ticker != "AAPL" {
		t.Errorf("ticker = %s, want AAPL (normalized)", result.Ticker)
	}
	if result.Fundamentals == nil || result.Summary.HeadlineView == "" {
		t.Error("analysis sections missing")
	}
	if result.Portfolio == nil {
		t.Fatal("portfolio context should be attached when the user holds the ticker")
	}
	// AAPL 10*200=2000, MSFT 10*400=4000; weight 2000/6000
	wantWeight := 2000.0 / 6000.0 * 100
	if diff := result.Portfolio.PositionWeightPct - wantWeight; diff > 0.01 || diff < -0.01 {
		t.Errorf("position weight = %.2f, want %.2f", result.Portfolio.PositionWeightPct, wantWeight)
	}
	if result.Portfolio.Holding == nil || result.Portfolio.Holding.Ticker != "AAPL" {
		t.Errorf("holding = %+v, want AAPL", result.Portfolio.Holding)
	}
	if result.Portfolio.Metrics.TotalValue != 6000 {
		t.Errorf("total value = %.0f, want 6000", result.Portfolio.Metrics.TotalValue)
	}
	if result.Portfolio.Metrics.TotalCost != 4500 {
		t.Errorf("total cost = %.0f, want 4500", result.Portfolio.Metrics.TotalCost)
	}
	if result.Portfolio.SuggestedAction == nil {
		t.Error("suggested action should be populated")
	}
}

func TestService_AnalyzeStock_NoHoldings(t *testing.T) {
	provider := &fakeProvider{stocks: map[string]*models.StockData{"AAPL": testStock("AAPL", 200)}}
	store := newFakeStore()
	store.profiles["u1"] = moderateProfile()

	svc := newTestService(provider, store)
	result, err := svc.AnalyzeStock(context.Background(), "u1", "AAPL")
	if err != nil {
		t.Fatalf("AnalyzeStock() error: %v", err)
	}
	if result.Portfolio != nil {
		t.Error("portfolio context should be nil without holdings")
	}
}

func TestService_AnalyzeStock_HoldsOtherTickers(t *testing.T) {
	provider := &fakeProvider{stocks: map[string]*models.StockData{
		"AAPL": testStock("AAPL", 200),
		"MSFT": testStock("MSFT", 400),
	}}
	store := newFakeStore()
	store.profiles["u1"] = moderateProfile()
	store.holdings["u1"] = []*models.PortfolioHolding{
		{Ticker: "MSFT", Shares: 10, AverageCostBasis: 300},
	}

	svc := newTestService(provider, store)
	result, err := svc.AnalyzeStock(context.Background(), "u1", "AAPL")
	if err != nil {
		t.Fatalf("AnalyzeStock() error: %v", err)
	}
	if result.Portfolio == nil {
		t.Fatal("portfolio context should exist when the user has any holdings")
	}
	if result.Portfolio.PositionWeightPct != 0 {
		t.Errorf("weight = %.2f, want 0 for an unheld ticker", result.Portfolio.PositionWeightPct)
	}
	if result.Portfolio.Holding != nil {
		t.Error("holding should be nil for an unheld ticker")
	}
}

func TestService_AnalyzeStock_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeProvider{}, newFakeStore())

	if _, err := svc.AnalyzeStock(context.Background(), "u1", "  "); err == nil {
		t.Error("expected error for blank ticker")
	}
	if _, err := svc.AnalyzeStock(context.Background(), "", "AAPL"); err == nil {
		t.Error("expected error for blank user id")
	}
}

func TestService_AnalyzeStock_MissingProfile(t *testing.T) {
	provider := &fakeProvider{stocks: map[string]*models.StockData{"AAPL": testStock("AAPL", 200)}}
	svc := newTestService(provider, newFakeStore())

	_, err := svc.AnalyzeStock(context.Background(), "u1", "AAPL")
	if err == nil {
		t.Fatal("expected error when the user has no profile")
	}
	if !strings.Contains(err.Error(), "profile") {
		t.Errorf("error should mention the profile: %v", err)
	}
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("error should match common.ErrNotFound: %v", err)
	}
}

func TestService_AnalyzeStock_PriceFallback(t *testing.T) {
	// DEAD has no feed data; its value falls back to cost basis
	provider := &fakeProvider{stocks: map[string]*models.StockData{"AAPL": testStock("AAPL", 200)}}
	store := newFakeStore()
	store.profiles["u1"] = moderateProfile()
	store.holdings["u1"] = []*models.PortfolioHolding{
		{Ticker: "AAPL", Shares: 10, AverageCostBasis: 150},
		{Ticker: "DEAD", Shares: 10, AverageCostBasis: 100},
	}

	svc := newTestService(provider, store)
	result, err := svc.AnalyzeStock(context.Background(), "u1", "AAPL")
	if err != nil {
		t.Fatalf("AnalyzeStock() error: %v", err)
	}
	// AAPL 10*200=2000, DEAD 10*100=1000
	if result.Portfolio.Metrics.TotalValue != 3000 {
		t.Errorf("total value = %.0f, want 3000 with cost-basis fallback", result.Portfolio.Metrics.TotalValue)
	}
}

func TestService_Recommend(t *testing.T) {
	provider := &fakeProvider{stocks: map[string]*models.StockData{"AAPL": testStock("AAPL", 200)}}
	store := newFakeStore()
	store.profiles["u1"] = moderateProfile()
	store.holdings["u1"] = []*models.PortfolioHolding{
		{Ticker: "AAPL", Shares: 10, AverageCostBasis: 150},
	}

	svc := newTestService(provider, store)
	rec, err := svc.Recommend(context.Background(), "u1", "AAPL")
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if rec.Ticker != "AAPL" {
		t.Errorf("ticker = %s", rec.Ticker)
	}
	if rec.PrimaryAction == "" || rec.Headline == "" {
		t.Errorf("recommendation incomplete: %+v", rec)
	}
	if rec.ConfidenceScore < 0 || rec.ConfidenceScore > 100 {
		t.Errorf("confidence = %d, want 0..100", rec.ConfidenceScore)
	}
}

func TestService_AnalyzeHistory(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	points := make([]models.PricePoint, 0, 10)
	for i := 0; i < 10; i++ {
		points = append(points, models.PricePoint{
			Date:  base.AddDate(0, 0, i),
			Price: 100 + float64(i),
		})
	}
	provider := &fakeProvider{history: map[string]*models.HistoricalData{
		"AAPL": {DataPoints: points},
	}}

	svc := newTestService(provider, newFakeStore())
	got, err := svc.AnalyzeHistory(context.Background(), "AAPL", models.Period3M)
	if err != nil {
		t.Fatalf("AnalyzeHistory() error: %v", err)
	}
	if got.Ticker != "AAPL" || got.Period != models.Period3M {
		t.Errorf("identity = %s/%s", got.Ticker, got.Period)
	}
	if got.DataPoints != 10 {
		t.Errorf("data points = %d, want 10", got.DataPoints)
	}
	if got.Returns.SimpleReturnPct <= 0 {
		t.Errorf("simple return = %.2f, want positive for a rising series", got.Returns.SimpleReturnPct)
	}
}

func TestService_AnalyzeHistory_UnsupportedPeriod(t *testing.T) {
	svc := newTestService(&fakeProvider{}, newFakeStore())
	_, err := svc.AnalyzeHistory(context.Background(), "AAPL", models.Period("2W"))
	if err == nil {
		t.Fatal("expected error for unsupported period")
	}
	if !strings.Contains(err.Error(), "2W") {
		t.Errorf("error should name the period: %v", err)
	}
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("error should match common.ErrInvalidInput: %v", err)
	}
}

func TestService_PortfolioOverview(t *testing.T) {
	provider := &fakeProvider{stocks: map[string]*models.StockData{
		"AAPL": testStock("AAPL", 200),
		"MSFT": testStock("MSFT", 400),
	}}
	store := newFakeStore()
	store.holdings["u1"] = []*models.PortfolioHolding{
		{Ticker: "AAPL", Shares: 10, AverageCostBasis: 150},
		{Ticker: "MSFT", Shares: 10, AverageCostBasis: 300},
	}

	svc := newTestService(provider, store)
	overview, err := svc.PortfolioOverview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("PortfolioOverview() error: %v", err)
	}

	if overview.Metrics.TotalValue != 6000 {
		t.Errorf("total value = %.0f, want 6000", overview.Metrics.TotalValue)
	}
	if overview.Metrics.TotalGainLoss != 1500 {
		t.Errorf("gain/loss = %.0f, want 1500", overview.Metrics.TotalGainLoss)
	}
	if len(overview.Allocations) != 2 {
		t.Fatalf("allocations = %d, want 2", len(overview.Allocations))
	}
	// MSFT (4000) first, AAPL (2000) second
	if overview.Allocations[0].Ticker != "MSFT" || overview.Allocations[1].Ticker != "AAPL" {
		t.Errorf("allocations not sorted by weight: %+v", overview.Allocations)
	}
	var total float64
	for _, a := range overview.Allocations {
		total += a.WeightPct
	}
	if total < 99.9 || total > 100.1 {
		t.Errorf("weights sum to %.2f, want 100", total)
	}
	// MSFT at 66% is a concentration flag
	if overview.Concentration.Level != models.ExposureHigh {
		t.Errorf("concentration = %s, want high", overview.Concentration.Level)
	}
}

func TestService_PortfolioOverview_Empty(t *testing.T) {
	svc := newTestService(&fakeProvider{}, newFakeStore())
	overview, err := svc.PortfolioOverview(context.Background(), "u1")
	if err != nil {
		t.Fatalf("PortfolioOverview() error: %v", err)
	}
	if len(overview.Allocations) != 0 {
		t.Errorf("allocations = %d, want 0", len(overview.Allocations))
	}
	if overview.Concentration.Level != models.ExposureLow {
		t.Errorf("concentration = %s, want low for an empty portfolio", overview.Concentration.Level)
	}
}

func TestService_PortfolioOverview_BlankUser(t *testing.T) {
	svc := newTestService(&fakeProvider{}, newFakeStore())
	if _, err := svc.PortfolioOverview(context.Background(), " "); err == nil {
		t.Error("expected error for blank user id")
	}
}
