package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/finbuddy/finbuddy/internal/models"
)

// analyzeVolatility scores the dispersion of unrealized returns across
// holdings. A single holding uses its absolute return as the proxy.
func (s *Service) analyzeVolatility(valued []ValuedHolding) models.VolatilityResult {
	result := models.VolatilityResult{VarianceLevel: models.RiskLevelLow}

	if len(valued) == 0 {
		return result
	}

	var stdDev float64
	if len(valued) == 1 {
		stdDev = math.Abs(valued[0].GainLossPct)
	} else {
		returns := make([]float64, len(valued))
		for i, v := range valued {
			returns[i] = v.GainLossPct
		}
		stdDev = stat.PopStdDev(returns, nil)
	}
	result.StdDeviation = stdDev

	t := s.config.Thresholds
	switch {
	case stdDev > t.VolatilityHighStdDev:
		result.Score = 75
		result.VarianceLevel = models.RiskLevelHigh
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("High volatility: returns vary by %.1f%% across holdings", stdDev))
	case stdDev > t.VolatilityMediumStdDev:
		result.Score = 45
		result.VarianceLevel = models.RiskLevelMedium
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("Moderate volatility: returns vary by %.1f%% across holdings", stdDev))
	default:
		result.Score = 20
	}

	return result
}
