package simulation

import (
	"context"
	"time"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

// Service implements SimulationService
type Service struct {
	gemini          interfaces.GeminiClient
	decisionTimeout time.Duration
	logger          *common.Logger
}

// NewService creates a new simulation service. gemini may be nil; the
// verdict then comes from the rule-based decision.
func NewService(gemini interfaces.GeminiClient, decisionTimeout time.Duration, logger *common.Logger) *Service {
	if decisionTimeout <= 0 {
		decisionTimeout = 5 * time.Second
	}
	return &Service{
		gemini:          gemini,
		decisionTimeout: decisionTimeout,
		logger:          logger,
	}
}

// Simulate scores the current and proposed portfolios and produces a
// proceed/reject verdict for the change.
func (s *Service) Simulate(ctx context.Context, current, proposed []models.Holding, profile models.RiskProfile) (*models.SimulationResult, error) {
	result := &models.SimulationResult{
		Current:     ComputeMetrics(current),
		Proposed:    ComputeMetrics(proposed),
		GeneratedAt: time.Now().UTC(),
	}

	result.Deltas = models.MetricDeltas{
		TotalValue:           result.Proposed.TotalValue - result.Current.TotalValue,
		RiskScore:            result.Proposed.RiskScore - result.Current.RiskScore,
		DiversificationScore: result.Proposed.DiversificationScore - result.Current.DiversificationScore,
		SentimentScore:       result.Proposed.SentimentScore - result.Current.SentimentScore,
		OpportunityExposure:  result.Proposed.OpportunityExposure - result.Current.OpportunityExposure,
		ThreatExposure:       result.Proposed.ThreatExposure - result.Current.ThreatExposure,
		TopHoldingPct:        result.Proposed.TopHoldingPct - result.Current.TopHoldingPct,
	}

	result.Decision = s.decide(ctx, result, profile)

	s.logger.Info().
		Bool("should_proceed", result.Decision.ShouldProceed).
		Float64("risk_delta", result.Deltas.RiskScore).
		Float64("diversification_delta", result.Deltas.DiversificationScore).
		Msg("Simulation complete")

	return result, nil
}

// Ensure Service implements SimulationService
var _ interfaces.SimulationService = (*Service)(nil)
