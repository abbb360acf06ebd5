package risk

import (
	"fmt"

	"github.com/finbuddy/finbuddy/internal/models"
)

// analyzeSectorExposure scores how much portfolio value sits in the
// dominant sector. Unlabeled holdings count under "Other".
func (s *Service) analyzeSectorExposure(valued []ValuedHolding) models.SectorExposureResult {
	result := models.SectorExposureResult{}

	var totalValue float64
	sectorValues := make(map[string]float64)
	for _, v := range valued {
		totalValue += v.CurrentValue
		sectorValues[v.SectorOrOther()] += v.CurrentValue
	}
	if totalValue == 0 {
		return result
	}

	distribution := make(map[string]float64, len(sectorValues))
	for sector, value := range sectorValues {
		pct := value / totalValue * 100
		distribution[sector] = pct
		if pct > result.DominantSectorPct {
			result.DominantSector = sector
			result.DominantSectorPct = pct
		}
	}
	result.SectorDistribution = distribution

	t := s.config.Thresholds
	switch {
	case result.DominantSectorPct > t.SectorHighPct:
		result.Score = 70
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("Sector concentration: %.1f%% of portfolio in %s", result.DominantSectorPct, result.DominantSector))
	case result.DominantSectorPct > t.SectorMediumPct:
		result.Score = 45
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("Moderate sector concentration: %.1f%% of portfolio in %s", result.DominantSectorPct, result.DominantSector))
	default:
		result.Score = 20
	}

	return result
}
