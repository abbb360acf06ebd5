package models

import "time"

// RiskAppetite expresses how much risk the investor will accept
type RiskAppetite string

const (
	RiskAppetiteLow    RiskAppetite = "low"
	RiskAppetiteMedium RiskAppetite = "medium"
	RiskAppetiteHigh   RiskAppetite = "high"
)

// RiskProfile describes the investor running a simulation
type RiskProfile struct {
	RiskAppetite   RiskAppetite `json:"risk_appetite"`
	InvestmentGoal string       `json:"investment_goal,omitempty"`
	HorizonYears   int          `json:"horizon_years"`
}

// PortfolioMetrics is the scored snapshot of a portfolio used when
// comparing a current allocation against a proposed one.
type PortfolioMetrics struct {
	TotalValue           float64            `json:"total_value"`
	RiskScore            float64            `json:"risk_score"`
	DiversificationScore float64            `json:"diversification_score"`
	SentimentScore       float64            `json:"sentiment_score"`
	OpportunityExposure  float64            `json:"opportunity_exposure"`
	ThreatExposure       float64            `json:"threat_exposure"`
	SectorDistribution   map[string]float64 `json:"sector_distribution,omitempty"`
	TopHoldingPct        float64            `json:"top_holding_pct"`
	HoldingsCount        int                `json:"holdings_count"`
}

// MetricDeltas holds the proposed-minus-current metric differences
type MetricDeltas struct {
	TotalValue           float64 `json:"total_value"`
	RiskScore            float64 `json:"risk_score"`
	DiversificationScore float64 `json:"diversification_score"`
	SentimentScore       float64 `json:"sentiment_score"`
	OpportunityExposure  float64 `json:"opportunity_exposure"`
	ThreatExposure       float64 `json:"threat_exposure"`
	TopHoldingPct        float64 `json:"top_holding_pct"`
}

// Decision is the verdict on a proposed portfolio change
type Decision struct {
	ShouldProceed bool     `json:"should_proceed"`
	Reasoning     string   `json:"reasoning"`
	Warnings      []string `json:"warnings,omitempty"`
	Confidence    float64  `json:"confidence"`
}

// SimulationResult is the full output of a what-if comparison
type SimulationResult struct {
	Current     PortfolioMetrics `json:"current"`
	Proposed    PortfolioMetrics `json:"proposed"`
	Deltas      MetricDeltas     `json:"deltas"`
	Decision    Decision         `json:"decision"`
	GeneratedAt time.Time        `json:"generated_at"`
}
