// Package feed provides a client for the Aurora market data feed API
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/aurora/internal/common"
	"github.com/bobmcallan/aurora/internal/interfaces"
	"github.com/bobmcallan/aurora/internal/models"
)

const (
	DefaultBaseURL   = "https://feed.aurora.local/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the MarketDataProvider interface against the feed API.
// Requests are rate limited and never retried; a failed fetch surfaces to the
// caller with the endpoint in the error.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

var _ interfaces.MarketDataProvider = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new feed client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError represents a non-2xx feed response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("feed API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// IsNotFound reports whether err is a feed 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("api_token", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Feed API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetStockData retrieves fundamentals, technicals, and sentiment for a
// ticker. Absent upstream fields stay nil so the engine can tell "missing"
// from zero.
func (c *Client) GetStockData(ctx context.Context, ticker string) (*models.StockData, error) {
	var payload stockPayload
	if err := c.get(ctx, fmt.Sprintf("/stocks/%s", url.PathEscape(ticker)), nil, &payload); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("ticker '%s' not found in feed: %w", ticker, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch stock data for '%s': %w", ticker, err)
	}
	if payload.Ticker == "" {
		payload.Ticker = ticker
	}
	return payload.toModel(), nil
}

// GetHistoricalData retrieves the price series for a period.
func (c *Client) GetHistoricalData(ctx context.Context, ticker string, period models.Period) (*models.HistoricalData, error) {
	params := url.Values{}
	params.Set("period", string(period))

	var bars []historyBar
	if err := c.get(ctx, fmt.Sprintf("/stocks/%s/history", url.PathEscape(ticker)), params, &bars); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("history for ticker '%s' in feed: %w", ticker, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch history for '%s': %w", ticker, err)
	}

	data := &models.HistoricalData{
		Ticker:     ticker,
		Period:     period,
		DataPoints: make([]models.PricePoint, 0, len(bars)),
	}
	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			c.logger.Warn().Str("ticker", ticker).Str("date", bar.Date).Msg("Skipping bar with unparseable date")
			continue
		}
		data.DataPoints = append(data.DataPoints, models.PricePoint{
			Date:   date,
			Price:  bar.Close,
			Volume: bar.Volume,
		})
	}
	return data, nil
}

// stockPayload is the wire form of a stock snapshot
type stockPayload struct {
	Ticker       string               `json:"ticker"`
	Exchange     string               `json:"exchange"`
	Name         string               `json:"name"`
	Fundamentals *fundamentalsPayload `json:"fundamentals"`
	Technicals   *technicalsPayload   `json:"technicals"`
	Sentiment    *sentimentPayload    `json:"sentiment"`
}

type fundamentalsPayload struct {
	TrailingPE           *float64 `json:"trailing_pe"`
	ForwardPE            *float64 `json:"forward_pe"`
	EPSGrowthYoYPct      *float64 `json:"eps_growth_yoy_pct"`
	RevenueGrowthYoYPct  *float64 `json:"revenue_growth_yoy_pct"`
	NetMarginPct         *float64 `json:"net_margin_pct"`
	FreeCashFlowYieldPct *float64 `json:"free_cash_flow_yield_pct"`
	DebtToEquity         *float64 `json:"debt_to_equity"`
	ReturnOnEquityPct    *float64 `json:"return_on_equity_pct"`
	DividendYieldPct     *float64 `json:"dividend_yield_pct"`
	EarningsYieldPct     *float64 `json:"earnings_yield_pct"`
}

type technicalsPayload struct {
	Price      *float64 `json:"price"`
	SMA20      *float64 `json:"sma_20"`
	SMA50      *float64 `json:"sma_50"`
	SMA200     *float64 `json:"sma_200"`
	RSI14      *float64 `json:"rsi_14"`
	High52Week *float64 `json:"high_52_week"`
	Low52Week  *float64 `json:"low_52_week"`
	Volume     *int64   `json:"volume"`
	AvgVolume  *int64   `json:"avg_volume"`
}

type sentimentPayload struct {
	Consensus       string   `json:"consensus"`
	TargetMeanPrice *float64 `json:"target_mean_price"`
	TargetHighPrice *float64 `json:"target_high_price"`
	TargetLowPrice  *float64 `json:"target_low_price"`
	NewsThemes      []string `json:"news_themes"`
}

type historyBar struct {
	Date   string  `json:"date"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

func (p *stockPayload) toModel() *models.StockData {
	stock := &models.StockData{
		Ticker:   p.Ticker,
		Exchange: p.Exchange,
		Name:     p.Name,
	}
	if f := p.Fundamentals; f != nil {
		stock.Fundamentals = &models.StockFundamentals{
			TrailingPE:           f.TrailingPE,
			ForwardPE:            f.ForwardPE,
			EPSGrowthYoYPct:      f.EPSGrowthYoYPct,
			RevenueGrowthYoYPct:  f.RevenueGrowthYoYPct,
			NetMarginPct:         f.NetMarginPct,
			FreeCashFlowYieldPct: f.FreeCashFlowYieldPct,
			DebtToEquity:         f.DebtToEquity,
			ReturnOnEquityPct:    f.ReturnOnEquityPct,
			DividendYieldPct:     f.DividendYieldPct,
			EarningsYieldPct:     f.EarningsYieldPct,
		}
	}
	if t := p.Technicals; t != nil {
		stock.Technicals = &models.StockTechnicals{
			Price:      t.Price,
			SMA20:      t.SMA20,
			SMA50:      t.SMA50,
			SMA200:     t.SMA200,
			RSI14:      t.RSI14,
			High52Week: t.High52Week,
			Low52Week:  t.Low52Week,
			Volume:     t.Volume,
			AvgVolume:  t.AvgVolume,
		}
	}
	if s := p.Sentiment; s != nil {
		stock.Sentiment = &models.StockSentiment{
			Consensus:       models.AnalystConsensus(s.Consensus),
			TargetMeanPrice: s.TargetMeanPrice,
			TargetHighPrice: s.TargetHighPrice,
			TargetLowPrice:  s.TargetLowPrice,
			NewsThemes:      s.NewsThemes,
		}
	}
	return stock
}
