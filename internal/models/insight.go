package models

import "time"

// InsightItem is a single analyzed news article in a market insight report
type InsightItem struct {
	Title          string    `json:"title"`
	Source         string    `json:"source"`
	Sentiment      float64   `json:"sentiment"`
	SentimentLabel Sentiment `json:"sentiment_label"`
	Risk           RiskLevel `json:"risk"`
	Relevance      RiskLevel `json:"relevance"`
	Summary        string    `json:"summary,omitempty"`
	URL            string    `json:"url,omitempty"`
	PublishedAt    time.Time `json:"published_at,omitempty"`
	Reason         string    `json:"reason,omitempty"`
}

// MarketInsights is the aggregate market mood analysis over recent news
type MarketInsights struct {
	MarketMood      string        `json:"market_mood"`
	AvgSentiment    float64       `json:"avg_sentiment"`
	GlobalRisk      string        `json:"global_risk"`
	ConfidenceScore float64       `json:"confidence_score"`
	Summary         string        `json:"summary,omitempty"`
	Opportunities   []InsightItem `json:"opportunities,omitempty"`
	Threats         []InsightItem `json:"threats,omitempty"`
	ProcessedNews   []InsightItem `json:"processed_news,omitempty"`
	TotalAnalyzed   int           `json:"total_analyzed"`
	GeneratedAt     time.Time     `json:"generated_at"`
}
