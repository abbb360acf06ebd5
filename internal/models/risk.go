package models

import "time"

// RiskLevel is a coarse three-way classification used across reports
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// RiskLevelForScore maps a 0-100 composite score to a risk level
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// RiskComponent carries the score and alerts common to every risk analyzer
type RiskComponent struct {
	Score  float64  `json:"score"`
	Alerts []string `json:"alerts,omitempty"`
}

// HoldingWeight is one entry in a value-weighted distribution
type HoldingWeight struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
	Pct    float64 `json:"pct"`
}

// ConcentrationResult describes how concentrated the portfolio value is
type ConcentrationResult struct {
	RiskComponent
	TopHolding    string          `json:"top_holding,omitempty"`
	TopHoldingPct float64         `json:"top_holding_pct"`
	Distribution  []HoldingWeight `json:"distribution,omitempty"`
}

// VolatilityResult describes the dispersion of per-holding returns
type VolatilityResult struct {
	RiskComponent
	StdDeviation  float64   `json:"std_deviation"`
	VarianceLevel RiskLevel `json:"variance_level"`
}

// SectorExposureResult describes sector balance across holdings
type SectorExposureResult struct {
	RiskComponent
	SectorDistribution map[string]float64 `json:"sector_distribution,omitempty"`
	DominantSector     string             `json:"dominant_sector,omitempty"`
	DominantSectorPct  float64            `json:"dominant_sector_pct"`
}

// NewsMatch ties a news article to the holding symbol it mentions
type NewsMatch struct {
	Symbol      string    `json:"symbol"`
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Sentiment   Sentiment `json:"sentiment"`
	Score       float64   `json:"score"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// SentimentResult describes news sentiment matched against holdings
type SentimentResult struct {
	RiskComponent
	AvgSentiment float64     `json:"avg_sentiment"`
	Matches      []NewsMatch `json:"matches,omitempty"`
	TotalMatches int         `json:"total_matches"`
}

// MatchedNews is an article surfaced as an opportunity or threat for a holding
type MatchedNews struct {
	Symbol    string    `json:"symbol"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
	URL       string    `json:"url,omitempty"`
}

// AssetRisk is the per-holding risk classification derived from unrealized P&L
type AssetRisk struct {
	Symbol      string    `json:"symbol"`
	GainLossPct float64   `json:"gain_loss_pct"`
	Level       RiskLevel `json:"level"`
}

// RiskReport is the full portfolio risk analysis
type RiskReport struct {
	OverallRisk    RiskLevel            `json:"overall_risk"`
	Score          float64              `json:"score"`
	Alerts         []string             `json:"alerts,omitempty"`
	Summary        PortfolioSummary     `json:"summary"`
	Concentration  ConcentrationResult  `json:"concentration"`
	Volatility     VolatilityResult     `json:"volatility"`
	SectorExposure SectorExposureResult `json:"sector_exposure"`
	NewsSentiment  SentimentResult      `json:"news_sentiment"`
	Opportunities  []MatchedNews        `json:"opportunities,omitempty"`
	Threats        []MatchedNews        `json:"threats,omitempty"`
	PerAssetRisk   []AssetRisk          `json:"per_asset_risk,omitempty"`
	Narrative      string               `json:"narrative,omitempty"`
	GeneratedAt    time.Time            `json:"generated_at"`
}
