// Package app wires configuration, clients, services, and storage.
package app

import (
	"context"
	"fmt"

	"github.com/finbuddy/finbuddy/internal/clients/gemini"
	"github.com/finbuddy/finbuddy/internal/clients/marketdata"
	"github.com/finbuddy/finbuddy/internal/clients/newsfeed"
	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/services/insight"
	"github.com/finbuddy/finbuddy/internal/services/risk"
	"github.com/finbuddy/finbuddy/internal/services/simulation"
	"github.com/finbuddy/finbuddy/internal/storage"
)

// App holds all wired application components.
type App struct {
	Config *common.Config
	Logger *common.Logger
	Store  *storage.FileStore

	Prices interfaces.PriceClient
	News   interfaces.NewsClient
	Gemini interfaces.GeminiClient

	Risk       interfaces.RiskService
	Insight    interfaces.InsightService
	Simulation interfaces.SimulationService

	Scheduler *Scheduler
}

// New wires the application from configuration. Clients without API
// keys are left nil; dependent features degrade to their fallbacks.
func New(ctx context.Context, config *common.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	store, err := storage.NewFileStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.Store = store

	if key := config.Clients.MarketData.APIKey; key != "" {
		a.Prices = marketdata.NewClient(key,
			marketdata.WithBaseURL(config.Clients.MarketData.BaseURL),
			marketdata.WithRateLimit(config.Clients.MarketData.RateLimit),
			marketdata.WithTimeout(config.Clients.MarketData.GetTimeout()),
			marketdata.WithLogger(logger),
		)
	} else {
		logger.Warn().Msg("No market data API key configured, valuations use cost basis")
	}

	if key := config.Clients.NewsFeed.APIKey; key != "" {
		a.News = newsfeed.NewClient(key,
			newsfeed.WithBaseURL(config.Clients.NewsFeed.BaseURL),
			newsfeed.WithRateLimit(config.Clients.NewsFeed.RateLimit),
			newsfeed.WithTimeout(config.Clients.NewsFeed.GetTimeout()),
			newsfeed.WithLogger(logger),
		)
	} else {
		logger.Warn().Msg("No news feed API key configured, news refresh disabled")
	}

	if key := config.Clients.Gemini.APIKey; key != "" {
		client, err := gemini.NewClient(ctx, key,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client unavailable, using rule-based narratives")
		} else {
			a.Gemini = client
		}
	} else {
		logger.Warn().Msg("No Gemini API key configured, using rule-based narratives")
	}

	llmTimeout := config.Clients.Gemini.GetTimeout()
	a.Risk = risk.NewService(risk.DefaultConfig(), a.Prices, a.Gemini, llmTimeout, logger)
	a.Insight = insight.NewService(insight.DefaultKeywords(), a.Gemini, llmTimeout, logger)
	a.Simulation = simulation.NewService(a.Gemini, llmTimeout, logger)

	a.Scheduler = NewScheduler(a, logger)

	return a, nil
}

// Version returns the application version.
func (a *App) Version() string {
	return common.GetVersion()
}

// Build returns the application build stamp.
func (a *App) Build() string {
	return common.GetBuild()
}

// Close releases application resources.
func (a *App) Close() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
}
