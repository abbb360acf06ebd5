package risk

import (
	"fmt"
	"sort"

	"github.com/finbuddy/finbuddy/internal/models"
)

// analyzeConcentration scores how much portfolio value sits in the
// single largest holding.
func (s *Service) analyzeConcentration(valued []ValuedHolding) models.ConcentrationResult {
	result := models.ConcentrationResult{}

	var totalValue float64
	for _, v := range valued {
		totalValue += v.CurrentValue
	}
	if totalValue == 0 {
		return result
	}

	weights := make([]models.HoldingWeight, 0, len(valued))
	for _, v := range valued {
		weights = append(weights, models.HoldingWeight{
			Symbol: v.Symbol,
			Value:  v.CurrentValue,
			Pct:    v.CurrentValue / totalValue * 100,
		})
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].Pct > weights[j].Pct })

	top := weights[0]
	result.TopHolding = top.Symbol
	result.TopHoldingPct = top.Pct
	if len(weights) > 5 {
		weights = weights[:5]
	}
	result.Distribution = weights

	t := s.config.Thresholds
	switch {
	case top.Pct > t.ConcentrationHighPct:
		result.Score = 80
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("High concentration: %s is %.1f%% of portfolio value", top.Symbol, top.Pct))
	case top.Pct > t.ConcentrationMediumPct:
		result.Score = 50
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("Moderate concentration: %s is %.1f%% of portfolio value", top.Symbol, top.Pct))
	default:
		result.Score = 20
	}

	return result
}
