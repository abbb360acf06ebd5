package models

import "time"

// Sentiment is the categorical sentiment label attached to a news article
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Score maps the categorical label to its numeric sentiment score.
// Unknown labels map to 0 (neutral).
func (s Sentiment) Score() float64 {
	switch s {
	case SentimentPositive:
		return 0.7
	case SentimentNegative:
		return -0.7
	default:
		return 0.0
	}
}

// NewsItem is a single news article with pre-labelled sentiment.
// Articles are read-only inputs sourced from the news provider.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   Sentiment `json:"sentiment"`
}
