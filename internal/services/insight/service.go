package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

const (
	// MaxCorpus caps how many articles feed one analysis
	MaxCorpus = 50
	// MaxProcessed caps the echoed article list in reports
	MaxProcessed = 20
	// MaxSignals caps the opportunity and threat lists
	MaxSignals = 5

	bullishCutoff = 0.3
	bearishCutoff = -0.3
)

// Service implements InsightService
type Service struct {
	keywords       Keywords
	gemini         interfaces.GeminiClient
	summaryTimeout time.Duration
	logger         *common.Logger
}

// NewService creates a new insight service. gemini may be nil; the
// summary then comes from the deterministic generator.
func NewService(keywords Keywords, gemini interfaces.GeminiClient, summaryTimeout time.Duration, logger *common.Logger) *Service {
	if summaryTimeout <= 0 {
		summaryTimeout = 5 * time.Second
	}
	return &Service{
		keywords:       keywords,
		gemini:         gemini,
		summaryTimeout: summaryTimeout,
		logger:         logger,
	}
}

// MarketInsights analyzes recent news into an aggregate market view.
// At most MaxCorpus articles are considered, assumed newest first.
func (s *Service) MarketInsights(ctx context.Context, news []models.NewsItem) (*models.MarketInsights, error) {
	insights := &models.MarketInsights{GeneratedAt: time.Now().UTC()}

	if len(news) == 0 {
		insights.MarketMood = "Neutral"
		insights.GlobalRisk = "Unknown"
		insights.Summary = "No recent market news available to analyze."
		return insights, nil
	}

	corpus := news
	if len(corpus) > MaxCorpus {
		corpus = corpus[:MaxCorpus]
	}
	insights.TotalAnalyzed = len(corpus)

	items := make([]models.InsightItem, len(corpus))
	scores := make([]float64, len(corpus))
	negatives := 0
	for i, article := range corpus {
		item := s.analyzeArticle(article)
		items[i] = item
		scores[i] = item.Sentiment
		if item.Sentiment < bearishCutoff {
			negatives++
		}
	}

	insights.AvgSentiment = stat.Mean(scores, nil)
	insights.MarketMood = moodLabel(insights.AvgSentiment)
	insights.GlobalRisk = globalRisk(negatives, len(corpus))
	insights.ConfidenceScore = confidence(len(corpus))
	insights.Opportunities, insights.Threats = extractSignals(items)

	processed := items
	if len(processed) > MaxProcessed {
		processed = processed[:MaxProcessed]
	}
	insights.ProcessedNews = processed

	insights.Summary = s.generateSummary(ctx, insights)

	s.logger.Info().
		Str("mood", insights.MarketMood).
		Float64("avg_sentiment", insights.AvgSentiment).
		Int("analyzed", insights.TotalAnalyzed).
		Msg("Market insight analysis complete")

	return insights, nil
}

// analyzeArticle classifies one article's sentiment, risk, and relevance.
// Classification reads the headline only; summaries are too noisy.
func (s *Service) analyzeArticle(article models.NewsItem) models.InsightItem {
	score := article.Sentiment.Score()
	text := strings.ToLower(article.Title)

	risk, reason := s.classifyRisk(text, score)

	return models.InsightItem{
		Title:          article.Title,
		Source:         article.Source,
		Sentiment:      score,
		SentimentLabel: article.Sentiment,
		Risk:           risk,
		Relevance:      s.classifyRelevance(text, article.Source),
		Summary:        article.Summary,
		URL:            article.URL,
		PublishedAt:    article.PublishedAt,
		Reason:         reason,
	}
}

// classifyRisk grades an article by danger keywords and sentiment
func (s *Service) classifyRisk(text string, score float64) (models.RiskLevel, string) {
	for _, w := range s.keywords.Danger {
		if strings.Contains(text, w) {
			return models.RiskLevelHigh, fmt.Sprintf("mentions %q", w)
		}
	}
	if score < -0.6 {
		return models.RiskLevelHigh, "strongly negative sentiment"
	}
	for _, w := range s.keywords.Caution {
		if strings.Contains(text, w) {
			return models.RiskLevelMedium, fmt.Sprintf("mentions %q", w)
		}
	}
	if score < -0.3 {
		return models.RiskLevelMedium, "negative sentiment"
	}
	return models.RiskLevelLow, ""
}

// classifyRelevance grades how market-relevant an article is
func (s *Service) classifyRelevance(text, source string) models.RiskLevel {
	highHits := 0
	for _, w := range s.keywords.HighRelevance {
		if strings.Contains(text, w) {
			highHits++
		}
	}

	trusted := false
	for _, src := range s.keywords.TrustedSources {
		if strings.EqualFold(source, src) {
			trusted = true
			break
		}
	}

	if highHits >= 2 || trusted {
		return models.RiskLevelHigh
	}
	if highHits >= 1 {
		return models.RiskLevelMedium
	}
	for _, w := range s.keywords.MediumRelevance {
		if strings.Contains(text, w) {
			return models.RiskLevelMedium
		}
	}
	return models.RiskLevelLow
}

// extractSignals splits analyzed items into opportunity and threat lists.
// Only market-relevant items qualify; each list is sorted strongest signal
// first and capped at MaxSignals.
func extractSignals(items []models.InsightItem) (opportunities, threats []models.InsightItem) {
	for _, item := range items {
		if item.Relevance == models.RiskLevelLow {
			continue
		}
		switch {
		case item.Sentiment > bullishCutoff:
			entry := item
			entry.Reason = opportunityReason(item)
			opportunities = append(opportunities, entry)
		case item.Sentiment < bearishCutoff:
			entry := item
			entry.Reason = threatReason(item)
			threats = append(threats, entry)
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool { return opportunities[i].Sentiment > opportunities[j].Sentiment })
	sort.SliceStable(threats, func(i, j int) bool { return threats[i].Sentiment < threats[j].Sentiment })

	if len(opportunities) > MaxSignals {
		opportunities = opportunities[:MaxSignals]
	}
	if len(threats) > MaxSignals {
		threats = threats[:MaxSignals]
	}
	return opportunities, threats
}

// opportunityReason names the conditions that made an item an opportunity
func opportunityReason(item models.InsightItem) string {
	var parts []string
	if item.Sentiment > 0.6 {
		parts = append(parts, "Strong positive sentiment")
	}
	if item.Relevance == models.RiskLevelHigh {
		parts = append(parts, "High market relevance")
	}
	title := strings.ToLower(item.Title)
	if strings.Contains(title, "growth") || strings.Contains(title, "gain") {
		parts = append(parts, "Growth indicators")
	}
	if len(parts) == 0 {
		return "Positive market signal"
	}
	return strings.Join(parts, " | ")
}

// threatReason names the conditions that made an item a threat
func threatReason(item models.InsightItem) string {
	var parts []string
	if item.Sentiment < -0.6 {
		parts = append(parts, "Strong negative sentiment")
	}
	if item.Risk == models.RiskLevelHigh {
		parts = append(parts, "High risk indicators")
	}
	if item.Relevance == models.RiskLevelHigh {
		parts = append(parts, "High market impact")
	}
	if len(parts) == 0 {
		return "Negative market signal"
	}
	return strings.Join(parts, " | ")
}

func moodLabel(avg float64) string {
	switch {
	case avg > bullishCutoff:
		return "Bullish"
	case avg < bearishCutoff:
		return "Bearish"
	default:
		return "Neutral"
	}
}

// globalRisk grades the market by the fraction of strongly negative articles
func globalRisk(negatives, total int) string {
	if total == 0 {
		return "Unknown"
	}
	fraction := float64(negatives) / float64(total)
	switch {
	case fraction > 0.5:
		return "High"
	case fraction > 0.3:
		return "Medium"
	default:
		return "Low"
	}
}

// confidence scales with corpus size, saturating at MaxCorpus articles
func confidence(analyzed int) float64 {
	c := float64(analyzed) / float64(MaxCorpus)
	if c > 1 {
		c = 1
	}
	return c
}

// generateSummary produces a short market summary, preferring the LLM
// with a bounded timeout and falling back to the deterministic text.
func (s *Service) generateSummary(ctx context.Context, insights *models.MarketInsights) string {
	if s.gemini == nil {
		return fallbackSummary(insights)
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.summaryTimeout)
	defer cancel()

	text, err := s.gemini.GenerateContent(llmCtx, buildSummaryPrompt(insights))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Insight summary generation failed, using fallback")
		return fallbackSummary(insights)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackSummary(insights)
	}
	return text
}

func buildSummaryPrompt(insights *models.MarketInsights) string {
	var sb strings.Builder

	sb.WriteString("You are a market analyst. Write a 2-sentence plain-language summary ")
	sb.WriteString("of current market conditions from this analysis. No markdown.\n\n")
	fmt.Fprintf(&sb, "Mood: %s (avg sentiment %.2f over %d articles)\n",
		insights.MarketMood, insights.AvgSentiment, insights.TotalAnalyzed)
	fmt.Fprintf(&sb, "Global risk: %s\n", insights.GlobalRisk)

	if len(insights.Threats) > 0 {
		sb.WriteString("Top threats:\n")
		for _, t := range insights.Threats {
			fmt.Fprintf(&sb, "- %s (%s)\n", t.Title, t.Source)
		}
	}
	if len(insights.Opportunities) > 0 {
		sb.WriteString("Top opportunities:\n")
		for _, o := range insights.Opportunities {
			fmt.Fprintf(&sb, "- %s (%s)\n", o.Title, o.Source)
		}
	}

	return sb.String()
}

func fallbackSummary(insights *models.MarketInsights) string {
	return fmt.Sprintf("Market mood is %s with average sentiment %.2f across %d articles. Global risk is %s with %d potential threats and %d opportunities identified.",
		strings.ToLower(insights.MarketMood), insights.AvgSentiment, insights.TotalAnalyzed,
		strings.ToLower(insights.GlobalRisk), len(insights.Threats), len(insights.Opportunities))
}

// Ensure Service implements InsightService
var _ interfaces.InsightService = (*Service)(nil)
