package interfaces

import (
	"context"

	"github.com/finbuddy/finbuddy/internal/models"
)

// RiskService analyzes portfolio risk against recent news
type RiskService interface {
	AnalyzeRisk(ctx context.Context, holdings []models.Holding, news []models.NewsItem) (*models.RiskReport, error)
}

// InsightService derives aggregate market mood from recent news
type InsightService interface {
	MarketInsights(ctx context.Context, news []models.NewsItem) (*models.MarketInsights, error)
}

// SimulationService compares a current portfolio against a proposed one
type SimulationService interface {
	Simulate(ctx context.Context, current, proposed []models.Holding, profile models.RiskProfile) (*models.SimulationResult, error)
}
