// Package models defines data structures for FinBuddy
package models

import (
	"strings"
	"time"
)

// AssetType classifies a holding
type AssetType string

const (
	AssetTypeStock      AssetType = "stock"
	AssetTypeCrypto     AssetType = "crypto"
	AssetTypeBond       AssetType = "bond"
	AssetTypeETF        AssetType = "etf"
	AssetTypeMutualFund AssetType = "mutual_fund"
)

// NormalizeAssetType maps free-form input to a known asset type,
// defaulting to stock for empty/unknown values.
func NormalizeAssetType(s string) AssetType {
	switch AssetType(strings.ToLower(strings.TrimSpace(s))) {
	case AssetTypeCrypto:
		return AssetTypeCrypto
	case AssetTypeBond:
		return AssetTypeBond
	case AssetTypeETF:
		return AssetTypeETF
	case AssetTypeMutualFund:
		return AssetTypeMutualFund
	default:
		return AssetTypeStock
	}
}

// Holding represents a portfolio position. CurrentPrice is resolved at
// analysis time; zero means no price has been resolved yet.
type Holding struct {
	Symbol       string    `json:"symbol"`
	AssetType    AssetType `json:"asset_type"`
	Quantity     float64   `json:"quantity"`
	CostBasis    float64   `json:"cost_basis"`
	CurrentPrice float64   `json:"current_price,omitempty"`
	Sector       string    `json:"sector,omitempty"`
}

// SectorOrOther returns the holding's sector, or "Other" when unlabeled.
func (h Holding) SectorOrOther() string {
	if h.Sector == "" {
		return "Other"
	}
	return h.Sector
}

// Portfolio represents a user's set of holdings
type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Holdings  []Holding `json:"holdings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PortfolioSummary aggregates valuation totals for a report
type PortfolioSummary struct {
	TotalHoldings    int     `json:"total_holdings"`
	TotalValue       float64 `json:"total_value"`
	TotalInvested    float64 `json:"total_invested"`
	TotalGainLoss    float64 `json:"total_gain_loss"`
	TotalGainLossPct float64 `json:"total_gain_loss_pct"`
}
