package risk

import (
	"context"
	"time"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

// Service implements RiskService
type Service struct {
	config           Config
	prices           interfaces.PriceClient
	gemini           interfaces.GeminiClient
	narrativeTimeout time.Duration
	logger           *common.Logger
}

// NewService creates a new risk service. prices and gemini may be nil;
// valuation then falls back to cost basis and narratives to the
// rule-based generator.
func NewService(config Config, prices interfaces.PriceClient, gemini interfaces.GeminiClient, narrativeTimeout time.Duration, logger *common.Logger) *Service {
	if narrativeTimeout <= 0 {
		narrativeTimeout = 5 * time.Second
	}
	return &Service{
		config:           config,
		prices:           prices,
		gemini:           gemini,
		narrativeTimeout: narrativeTimeout,
		logger:           logger,
	}
}

// AnalyzeRisk produces the full risk report for a set of holdings
// against recent news.
func (s *Service) AnalyzeRisk(ctx context.Context, holdings []models.Holding, news []models.NewsItem) (*models.RiskReport, error) {
	report := &models.RiskReport{GeneratedAt: time.Now().UTC()}

	if len(holdings) == 0 {
		report.OverallRisk = models.RiskLevelLow
		report.Narrative = "Portfolio is empty. Add holdings to generate a risk analysis."
		return report, nil
	}

	valued := s.Valuate(ctx, holdings)
	report.Summary = Summarize(valued)

	report.Concentration = s.analyzeConcentration(valued)
	report.Volatility = s.analyzeVolatility(valued)
	report.SectorExposure = s.analyzeSectorExposure(valued)

	matches := matchNews(valued, news)
	report.NewsSentiment = s.scoreSentiment(matches)
	report.Opportunities, report.Threats = extractSignals(matches, s.config.MaxSignals)

	w := s.config.Weights
	score := w.Concentration*report.Concentration.Score +
		w.Volatility*report.Volatility.Score +
		w.Sentiment*report.NewsSentiment.Score +
		w.SectorExposure*report.SectorExposure.Score
	report.Score = clamp(score, 0, 100)
	report.OverallRisk = models.RiskLevelForScore(report.Score)

	report.Alerts = append(report.Alerts, report.Concentration.Alerts...)
	report.Alerts = append(report.Alerts, report.Volatility.Alerts...)
	report.Alerts = append(report.Alerts, report.NewsSentiment.Alerts...)
	report.Alerts = append(report.Alerts, report.SectorExposure.Alerts...)

	report.PerAssetRisk = assetRisks(valued)
	report.Narrative = s.generateNarrative(ctx, report)

	s.logger.Info().
		Float64("score", report.Score).
		Str("level", string(report.OverallRisk)).
		Int("alerts", len(report.Alerts)).
		Msg("Risk analysis complete")

	return report, nil
}

// assetRisks classifies each holding by its unrealized loss
func assetRisks(valued []ValuedHolding) []models.AssetRisk {
	risks := make([]models.AssetRisk, 0, len(valued))
	for _, v := range valued {
		level := models.RiskLevelLow
		switch {
		case v.GainLossPct < -15:
			level = models.RiskLevelHigh
		case v.GainLossPct < -5:
			level = models.RiskLevelMedium
		}
		risks = append(risks, models.AssetRisk{
			Symbol:      v.Symbol,
			GainLossPct: v.GainLossPct,
			Level:       level,
		})
	}
	return risks
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ensure Service implements RiskService
var _ interfaces.RiskService = (*Service)(nil)
