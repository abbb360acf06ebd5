package risk

import (
	"context"

	"github.com/finbuddy/finbuddy/internal/models"
)

// ValuedHolding is a holding with resolved valuation figures
type ValuedHolding struct {
	models.Holding
	Invested     float64
	CurrentValue float64
	GainLoss     float64
	GainLossPct  float64
	LivePrice    bool
}

// Valuate resolves current prices and valuation figures for all holdings.
// Price resolution order: price already on the holding, then the live
// price client, then cost basis. Lookup failures never fail the analysis.
func (s *Service) Valuate(ctx context.Context, holdings []models.Holding) []ValuedHolding {
	valued := make([]ValuedHolding, 0, len(holdings))

	for _, h := range holdings {
		v := ValuedHolding{Holding: h}

		price := h.CurrentPrice
		if price <= 0 && s.prices != nil {
			live, err := s.prices.GetLivePrice(ctx, h.Symbol, h.AssetType)
			if err != nil {
				s.logger.Warn().Str("symbol", h.Symbol).Err(err).Msg("Live price lookup failed, using cost basis")
			} else {
				price = live
				v.LivePrice = true
			}
		}
		if price <= 0 {
			price = h.CostBasis
		}
		v.CurrentPrice = price

		v.Invested = h.CostBasis * h.Quantity
		v.CurrentValue = price * h.Quantity
		v.GainLoss = v.CurrentValue - v.Invested
		if v.Invested != 0 {
			v.GainLossPct = v.GainLoss / v.Invested * 100
		}

		valued = append(valued, v)
	}

	return valued
}

// Summarize aggregates valuation totals across holdings
func Summarize(valued []ValuedHolding) models.PortfolioSummary {
	summary := models.PortfolioSummary{TotalHoldings: len(valued)}

	for _, v := range valued {
		summary.TotalValue += v.CurrentValue
		summary.TotalInvested += v.Invested
	}
	summary.TotalGainLoss = summary.TotalValue - summary.TotalInvested
	if summary.TotalInvested != 0 {
		summary.TotalGainLossPct = summary.TotalGainLoss / summary.TotalInvested * 100
	}

	return summary
}
