// Package simulation compares a current portfolio against a proposed one
package simulation

import (
	"github.com/finbuddy/finbuddy/internal/models"
)

// Sector groupings used for exposure scoring
var (
	growthSectors = map[string]bool{
		"Technology":       true,
		"Healthcare":       true,
		"Renewable Energy": true,
		"E-commerce":       true,
	}
	riskySectors = map[string]bool{
		"Cryptocurrency":   true,
		"Penny Stocks":     true,
		"Emerging Markets": true,
		"High Volatility":  true,
	}
)

// Default exposures when a non-empty portfolio carries no quantity weights
const (
	defaultOpportunityExposure = 50
	defaultThreatExposure      = 20
)

// ComputeMetrics scores a portfolio snapshot. Prices fall back to cost
// basis when no current price is set.
func ComputeMetrics(holdings []models.Holding) models.PortfolioMetrics {
	metrics := models.PortfolioMetrics{
		HoldingsCount:  len(holdings),
		SentimentScore: 50,
	}
	if len(holdings) == 0 {
		return metrics
	}

	values := make([]float64, len(holdings))
	var totalValue float64
	for i, h := range holdings {
		price := h.CurrentPrice
		if price <= 0 {
			price = h.CostBasis
		}
		values[i] = price * h.Quantity
		totalValue += values[i]
	}
	metrics.TotalValue = totalValue

	sectorValues := make(map[string]float64)
	sectorCounts := make(map[string]int)
	labeledSectors := make(map[string]bool)
	for i, h := range holdings {
		if h.Sector != "" {
			labeledSectors[h.Sector] = true
		}
		sectorValues[h.SectorOrOther()] += values[i]
		sectorCounts[h.SectorOrOther()]++
	}
	hasSector := len(labeledSectors) > 0

	if totalValue > 0 {
		distribution := make(map[string]float64, len(sectorValues))
		for sector, value := range sectorValues {
			distribution[sector] = value / totalValue * 100
		}
		metrics.SectorDistribution = distribution

		var topValue float64
		for _, v := range values {
			if v > topValue {
				topValue = v
			}
		}
		metrics.TopHoldingPct = topValue / totalValue * 100
	}

	metrics.RiskScore = riskScore(holdings, metrics.TopHoldingPct, sectorCounts, hasSector)
	metrics.DiversificationScore = diversificationScore(values, totalValue, len(labeledSectors))
	metrics.OpportunityExposure, metrics.ThreatExposure = exposures(holdings)

	return metrics
}

// riskScore blends concentration, holding count, and sector clustering
func riskScore(holdings []models.Holding, topPct float64, sectorCounts map[string]int, hasSector bool) float64 {
	concentration := topPct * 1.5
	if concentration > 100 {
		concentration = 100
	}

	var countPenalty float64
	switch n := len(holdings); {
	case n == 1:
		countPenalty = 40
	case n == 2:
		countPenalty = 25
	case n <= 5:
		countPenalty = 10
	}

	var sectorRisk float64
	if hasSector {
		dominant := 0
		for _, count := range sectorCounts {
			if count > dominant {
				dominant = count
			}
		}
		share := float64(dominant) / float64(len(holdings)) * 100
		sectorRisk = share * 0.5
		if sectorRisk > 30 {
			sectorRisk = 30
		}
	}

	return 0.5*concentration + 0.3*countPenalty + 0.2*sectorRisk
}

// diversificationScore rewards holding count and sector spread and
// penalizes value concentration via the Herfindahl index. Only labeled
// sectors count toward the spread bonus.
func diversificationScore(values []float64, totalValue float64, labeledSectors int) float64 {
	var base float64
	switch n := len(values); {
	case n >= 10:
		base = 100
	case n >= 7:
		base = 85
	case n >= 5:
		base = 70
	case n >= 3:
		base = 50
	case n == 2:
		base = 30
	default:
		base = 10
	}

	var herfindahl float64
	if totalValue > 0 {
		for _, v := range values {
			share := v / totalValue
			herfindahl += share * share
		}
	}

	var sectorBonus float64
	switch n := labeledSectors; {
	case n >= 5:
		sectorBonus = 15
	case n >= 3:
		sectorBonus = 10
	case n >= 2:
		sectorBonus = 5
	}

	score := base - herfindahl*40 + sectorBonus
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// exposures computes quantity-weighted growth and risky sector shares
func exposures(holdings []models.Holding) (opportunity, threat float64) {
	var total, growth, risky float64
	for _, h := range holdings {
		total += h.Quantity
		if growthSectors[h.Sector] {
			growth += h.Quantity
		}
		if riskySectors[h.Sector] {
			risky += h.Quantity
		}
	}
	if total == 0 {
		return defaultOpportunityExposure, defaultThreatExposure
	}
	return growth / total * 100, risky / total * 100
}
