package risk

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/finbuddy/finbuddy/internal/models"
)

// scoreSentiment scores the portfolio's news exposure from matched
// articles. Matches come from matchNews, one per article.
func (s *Service) scoreSentiment(matches []models.NewsMatch) models.SentimentResult {
	result := models.SentimentResult{}
	result.TotalMatches = len(matches)

	if len(matches) == 0 {
		result.Score = 30
		return result
	}

	scores := make([]float64, len(matches))
	for i, m := range matches {
		scores[i] = m.Score
	}
	result.AvgSentiment = stat.Mean(scores, nil)

	for _, m := range matches {
		if m.Score < s.config.Thresholds.SentimentVeryNegative {
			result.Alerts = append(result.Alerts,
				fmt.Sprintf("Negative news about %s: %s", m.Symbol, truncateHeadline(m.Title, 80)))
		}
	}

	detail := matches
	if len(detail) > s.config.MaxSentimentMatches {
		detail = detail[:s.config.MaxSentimentMatches]
	}
	result.Matches = detail

	t := s.config.Thresholds
	switch {
	case result.AvgSentiment < t.SentimentVeryNegative:
		result.Score = 70
	case result.AvgSentiment < t.SentimentNegative:
		result.Score = 45
	default:
		result.Score = 25
	}

	return result
}

func truncateHeadline(title string, max int) string {
	if len(title) <= max {
		return title
	}
	return title[:max] + "..."
}

// matchNews pairs articles with the first holding they mention. A holding
// matches when its symbol or its asset type appears in the headline;
// summaries are ignored.
func matchNews(valued []ValuedHolding, news []models.NewsItem) []models.NewsMatch {
	var matches []models.NewsMatch

	for _, article := range news {
		title := strings.ToLower(article.Title)
		for _, v := range valued {
			symbol := strings.ToLower(v.Symbol)
			assetType := strings.ToLower(string(v.AssetType))
			bySymbol := symbol != "" && strings.Contains(title, symbol)
			byType := assetType != "" && strings.Contains(title, assetType)
			if !bySymbol && !byType {
				continue
			}
			matches = append(matches, models.NewsMatch{
				Symbol:      v.Symbol,
				Title:       article.Title,
				Source:      article.Source,
				Sentiment:   article.Sentiment,
				Score:       article.Sentiment.Score(),
				URL:         article.URL,
				PublishedAt: article.PublishedAt,
			})
			break
		}
	}

	return matches
}

// extractSignals splits matched news into opportunity and threat lists,
// strongest signals first, capped at limit each.
func extractSignals(matches []models.NewsMatch, limit int) (opportunities, threats []models.MatchedNews) {
	for _, m := range matches {
		entry := models.MatchedNews{
			Symbol:    m.Symbol,
			Title:     m.Title,
			Source:    m.Source,
			Sentiment: m.Sentiment,
			Score:     m.Score,
			URL:       m.URL,
		}
		switch {
		case m.Score > 0:
			opportunities = append(opportunities, entry)
		case m.Score < 0:
			threats = append(threats, entry)
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool { return opportunities[i].Score > opportunities[j].Score })
	sort.SliceStable(threats, func(i, j int) bool { return threats[i].Score < threats[j].Score })

	if len(opportunities) > limit {
		opportunities = opportunities[:limit]
	}
	if len(threats) > limit {
		threats = threats[:limit]
	}

	return opportunities, threats
}
