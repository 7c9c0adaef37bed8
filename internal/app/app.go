// Package app wires configuration, storage, clients, the engine, and the
// analysis service into one initialized application core.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/aurora/internal/clients/feed"
	"github.com/bobmcallan/aurora/internal/common"
	"github.com/bobmcallan/aurora/internal/engine"
	"github.com/bobmcallan/aurora/internal/interfaces"
	"github.com/bobmcallan/aurora/internal/services/analysis"
	"github.com/bobmcallan/aurora/internal/storage/userdb"
)

// App holds all initialized services and clients shared by cmd/aurora-server.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Store           interfaces.UserStore
	Feed            interfaces.MarketDataProvider
	Engine          *engine.Engine
	AnalysisService interfaces.AnalysisService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes storage, the feed client, the
// engine, and the analysis service. configPath may be empty, in which case
// AURORA_CONFIG, then aurora.toml next to the binary, then config/aurora.toml
// are tried in order.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("AURORA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "aurora.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/aurora.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to the binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging)

	store, err := userdb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Feed.APIKey == "" {
		logger.Warn().Msg("Feed API key not configured, requests may be rejected upstream")
	}
	feedClient := feed.NewClient(config.Feed.APIKey,
		feed.WithBaseURL(config.Feed.BaseURL),
		feed.WithLogger(logger),
		feed.WithRateLimit(config.Feed.RateLimit),
		feed.WithTimeout(config.Feed.GetTimeout()),
	)

	eng := engine.New(config.Engine)

	app := &App{
		Config:          config,
		Logger:          logger,
		Store:           store,
		Feed:            feedClient,
		Engine:          eng,
		AnalysisService: analysis.NewService(feedClient, store, eng, logger),
		StartupTime:     time.Now(),
	}

	logger.Info().
		Str("environment", config.Environment).
		Str("storage_path", config.Storage.Path).
		Str("feed_url", config.Feed.BaseURL).
		Msg("Application initialized")
	return app, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}
	return nil
}
