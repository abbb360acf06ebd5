package risk

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/models"
)

func newTestService() *Service {
	return NewService(DefaultConfig(), nil, nil, 0, common.NewSilentLogger())
}

// mockPriceClient returns canned prices per symbol
type mockPriceClient struct {
	prices map[string]float64
	err    error
}

func (m *mockPriceClient) GetLivePrice(ctx context.Context, symbol string, assetType models.AssetType) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	price, ok := m.prices[symbol]
	if !ok {
		return 0, errors.New("unknown symbol")
	}
	return price, nil
}

// mockGemini returns a canned response or error
type mockGemini struct {
	response string
	err      error
	delay    time.Duration
}

func (m *mockGemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestAnalyzeRisk_EmptyHoldings(t *testing.T) {
	svc := newTestService()

	report, err := svc.AnalyzeRisk(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("AnalyzeRisk failed: %v", err)
	}

	if report.OverallRisk != models.RiskLevelLow {
		t.Errorf("expected Low risk for empty portfolio, got %s", report.OverallRisk)
	}
	if report.Score != 0 {
		t.Errorf("expected score 0, got %.2f", report.Score)
	}
	if len(report.Alerts) != 0 {
		t.Errorf("expected no alerts, got %v", report.Alerts)
	}
	if report.Narrative == "" {
		t.Error("expected a narrative even for an empty portfolio")
	}
}

func TestAnalyzeRisk_ConcentratedTechPortfolio(t *testing.T) {
	svc := newTestService()

	holdings := []models.Holding{
		{Symbol: "AAPL", AssetType: models.AssetTypeStock, Quantity: 10, CostBasis: 100, CurrentPrice: 150, Sector: "Technology"},
		{Symbol: "MSFT", AssetType: models.AssetTypeStock, Quantity: 5, CostBasis: 200, CurrentPrice: 220, Sector: "Technology"},
		{Symbol: "GOOG", AssetType: models.AssetTypeStock, Quantity: 2, CostBasis: 100, CurrentPrice: 90, Sector: "Technology"},
	}
	news := []models.NewsItem{
		{Title: "AAPL beats earnings expectations", Source: "Finnhub", URL: "https://n/1", Sentiment: models.SentimentPositive},
		{Title: "GOOG faces regulatory warning", Source: "Finnhub", URL: "https://n/2", Sentiment: models.SentimentNegative},
		{Title: "Fed holds rates steady", Source: "Reuters", URL: "https://n/3", Sentiment: models.SentimentNeutral},
	}

	report, err := svc.AnalyzeRisk(context.Background(), holdings, news)
	if err != nil {
		t.Fatalf("AnalyzeRisk failed: %v", err)
	}

	// Values: AAPL 1500, MSFT 1100, GOOG 180, total 2780
	if math.Abs(report.Summary.TotalValue-2780) > 0.01 {
		t.Errorf("expected total value 2780, got %.2f", report.Summary.TotalValue)
	}

	// AAPL is 53.96% of value: concentration 80
	if report.Concentration.TopHolding != "AAPL" {
		t.Errorf("expected top holding AAPL, got %s", report.Concentration.TopHolding)
	}
	if report.Concentration.Score != 80 {
		t.Errorf("expected concentration score 80, got %.0f", report.Concentration.Score)
	}

	// Returns {50, 10, -10}: population stddev 24.94 -> 75
	if report.Volatility.Score != 75 {
		t.Errorf("expected volatility score 75, got %.0f", report.Volatility.Score)
	}
	if report.Volatility.VarianceLevel != models.RiskLevelHigh {
		t.Errorf("expected High variance level, got %s", report.Volatility.VarianceLevel)
	}

	// 100% Technology: sector 70
	if report.SectorExposure.Score != 70 {
		t.Errorf("expected sector score 70, got %.0f", report.SectorExposure.Score)
	}
	if report.SectorExposure.DominantSector != "Technology" {
		t.Errorf("expected dominant sector Technology, got %s", report.SectorExposure.DominantSector)
	}

	// Two matched articles (+0.7, -0.7): avg 0 -> 25
	if report.NewsSentiment.TotalMatches != 2 {
		t.Errorf("expected 2 news matches, got %d", report.NewsSentiment.TotalMatches)
	}
	if report.NewsSentiment.Score != 25 {
		t.Errorf("expected sentiment score 25, got %.0f", report.NewsSentiment.Score)
	}

	// 0.30*80 + 0.25*75 + 0.25*25 + 0.20*70 = 63.0
	if math.Abs(report.Score-63.0) > 0.001 {
		t.Errorf("expected overall score 63.0, got %.2f", report.Score)
	}
	if report.OverallRisk != models.RiskLevelMedium {
		t.Errorf("expected Medium risk, got %s", report.OverallRisk)
	}

	if len(report.Opportunities) != 1 || report.Opportunities[0].Symbol != "AAPL" {
		t.Errorf("expected one AAPL opportunity, got %+v", report.Opportunities)
	}
	if len(report.Threats) != 1 || report.Threats[0].Symbol != "GOOG" {
		t.Errorf("expected one GOOG threat, got %+v", report.Threats)
	}
}

func TestAnalyzeRisk_LevelBoundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected models.RiskLevel
	}{
		{0, models.RiskLevelLow},
		{39.99, models.RiskLevelLow},
		{40, models.RiskLevelMedium},
		{69.99, models.RiskLevelMedium},
		{70, models.RiskLevelHigh},
		{100, models.RiskLevelHigh},
	}

	for _, tt := range tests {
		if got := models.RiskLevelForScore(tt.score); got != tt.expected {
			t.Errorf("RiskLevelForScore(%.2f) = %s, want %s", tt.score, got, tt.expected)
		}
	}
}

func TestAnalyzeConcentration_EqualSplit(t *testing.T) {
	svc := newTestService()

	valued := svc.Valuate(context.Background(), []models.Holding{
		{Symbol: "A", Quantity: 1, CostBasis: 100, CurrentPrice: 100},
		{Symbol: "B", Quantity: 1, CostBasis: 100, CurrentPrice: 100},
	})

	result := svc.analyzeConcentration(valued)
	// 50% each: above the 25% medium cut-off, below the 40% high cut-off
	if result.Score != 50 {
		t.Errorf("expected score 50 for a 50%% top holding, got %.0f", result.Score)
	}
	if math.Abs(result.TopHoldingPct-50) > 0.001 {
		t.Errorf("expected top pct 50, got %.2f", result.TopHoldingPct)
	}
}

func TestAnalyzeVolatility_SingleHolding(t *testing.T) {
	svc := newTestService()

	valued := svc.Valuate(context.Background(), []models.Holding{
		{Symbol: "TSLA", Quantity: 1, CostBasis: 100, CurrentPrice: 75},
	})

	result := svc.analyzeVolatility(valued)
	// Single holding: |gain/loss pct| is the proxy. -25% -> 25 stddev -> high
	if math.Abs(result.StdDeviation-25) > 0.001 {
		t.Errorf("expected stddev 25, got %.2f", result.StdDeviation)
	}
	if result.Score != 75 {
		t.Errorf("expected score 75, got %.0f", result.Score)
	}
	if result.VarianceLevel != models.RiskLevelHigh {
		t.Errorf("expected High variance level, got %s", result.VarianceLevel)
	}
}

func TestAnalyzeVolatility_ModerateBand(t *testing.T) {
	svc := newTestService()

	// Returns {15, -15}: population stddev 15, in the 10-20 band
	valued := []ValuedHolding{
		{Holding: models.Holding{Symbol: "A"}, GainLossPct: 15},
		{Holding: models.Holding{Symbol: "B"}, GainLossPct: -15},
	}

	result := svc.analyzeVolatility(valued)
	if result.Score != 45 {
		t.Errorf("expected score 45, got %.0f", result.Score)
	}
	if result.VarianceLevel != models.RiskLevelMedium {
		t.Errorf("expected Medium variance level, got %s", result.VarianceLevel)
	}
	if len(result.Alerts) != 1 || !strings.HasPrefix(result.Alerts[0], "Moderate volatility:") {
		t.Errorf("expected a moderate volatility alert, got %v", result.Alerts)
	}
}

func TestAnalyzeSectorExposure_MissingSectorIsOther(t *testing.T) {
	svc := newTestService()

	valued := svc.Valuate(context.Background(), []models.Holding{
		{Symbol: "X", Quantity: 1, CostBasis: 100, CurrentPrice: 100},
	})

	result := svc.analyzeSectorExposure(valued)
	if result.DominantSector != "Other" {
		t.Errorf("expected unlabeled holdings under Other, got %s", result.DominantSector)
	}
	if result.Score != 70 {
		t.Errorf("expected score 70 for 100%% single sector, got %.0f", result.Score)
	}
}

func TestAnalyzeSectorExposure_ModerateBand(t *testing.T) {
	svc := newTestService()

	// Technology holds 40% of value: in the 35-50 band
	valued := []ValuedHolding{
		{Holding: models.Holding{Symbol: "A", Sector: "Technology"}, CurrentValue: 400},
		{Holding: models.Holding{Symbol: "B", Sector: "Healthcare"}, CurrentValue: 300},
		{Holding: models.Holding{Symbol: "C", Sector: "Energy"}, CurrentValue: 300},
	}

	result := svc.analyzeSectorExposure(valued)
	if result.Score != 45 {
		t.Errorf("expected score 45, got %.0f", result.Score)
	}
	if len(result.Alerts) != 1 || !strings.HasPrefix(result.Alerts[0], "Moderate sector concentration:") {
		t.Errorf("expected a moderate sector alert, got %v", result.Alerts)
	}
}

func TestScoreSentiment_NoMatches(t *testing.T) {
	svc := newTestService()

	result := svc.scoreSentiment(nil)
	if result.Score != 30 {
		t.Errorf("expected neutral-unknown score 30 with no matches, got %.0f", result.Score)
	}
	if result.TotalMatches != 0 {
		t.Errorf("expected 0 matches, got %d", result.TotalMatches)
	}
}

func TestScoreSentiment_NegativeNews(t *testing.T) {
	svc := newTestService()

	matches := []models.NewsMatch{
		{Symbol: "A", Score: -0.7, Sentiment: models.SentimentNegative},
		{Symbol: "B", Score: -0.7, Sentiment: models.SentimentNegative},
		{Symbol: "C", Score: 0.7, Sentiment: models.SentimentPositive},
	}

	result := svc.scoreSentiment(matches)
	// avg -0.233: negative but above the -0.3 cut-off
	if result.Score != 45 {
		t.Errorf("expected score 45, got %.0f", result.Score)
	}
	// one alert per negative headline
	if len(result.Alerts) != 2 {
		t.Errorf("expected 2 alerts, got %v", result.Alerts)
	}

	matches = append(matches, models.NewsMatch{Symbol: "D", Score: -0.7})
	result = svc.scoreSentiment(matches)
	// avg -0.35: below -0.3
	if result.Score != 70 {
		t.Errorf("expected score 70, got %.0f", result.Score)
	}
	if len(result.Alerts) != 3 {
		t.Errorf("expected 3 alerts, got %v", result.Alerts)
	}
}

func TestScoreSentiment_AlertsNameSymbolAndHeadline(t *testing.T) {
	svc := newTestService()

	longTitle := strings.Repeat("TSLA recall widens as regulators open a fresh investigation ", 3)
	matches := []models.NewsMatch{
		{Symbol: "TSLA", Title: longTitle, Score: -0.7, Sentiment: models.SentimentNegative},
		{Symbol: "AAPL", Title: "AAPL hits record high", Score: 0.7, Sentiment: models.SentimentPositive},
		{Symbol: "MSFT", Title: "MSFT beats estimates", Score: 0.7, Sentiment: models.SentimentPositive},
	}

	result := svc.scoreSentiment(matches)
	// avg +0.233: positive overall, but the negative headline still alerts
	if result.Score != 25 {
		t.Errorf("expected score 25, got %.0f", result.Score)
	}
	if len(result.Alerts) != 1 {
		t.Fatalf("expected one alert for the negative headline, got %v", result.Alerts)
	}
	alert := result.Alerts[0]
	if !strings.HasPrefix(alert, "Negative news about TSLA: ") {
		t.Errorf("alert should name the symbol, got %q", alert)
	}
	if !strings.HasSuffix(alert, "...") || strings.Contains(alert, longTitle) {
		t.Errorf("expected headline truncated to 80 chars, got %q", alert)
	}
}

func TestMatchNews_FirstHoldingWins(t *testing.T) {
	valued := []ValuedHolding{
		{Holding: models.Holding{Symbol: "AAPL"}},
		{Holding: models.Holding{Symbol: "MSFT"}},
	}
	news := []models.NewsItem{
		{Title: "AAPL and MSFT both rally", Sentiment: models.SentimentPositive},
	}

	matches := matchNews(valued, news)
	if len(matches) != 1 {
		t.Fatalf("expected article counted once, got %d matches", len(matches))
	}
	if matches[0].Symbol != "AAPL" {
		t.Errorf("expected first matching holding AAPL, got %s", matches[0].Symbol)
	}
}

func TestMatchNews_AssetTypeInHeadline(t *testing.T) {
	valued := []ValuedHolding{
		{Holding: models.Holding{Symbol: "BTC", AssetType: models.AssetTypeCrypto}},
	}
	news := []models.NewsItem{
		{Title: "Crypto markets slide after exchange outage", Sentiment: models.SentimentNegative},
	}

	matches := matchNews(valued, news)
	if len(matches) != 1 {
		t.Fatalf("expected asset-type mention to match, got %d matches", len(matches))
	}
	if matches[0].Symbol != "BTC" {
		t.Errorf("expected match attributed to BTC, got %s", matches[0].Symbol)
	}
}

func TestMatchNews_SummaryMentionIgnored(t *testing.T) {
	valued := []ValuedHolding{
		{Holding: models.Holding{Symbol: "AAPL", AssetType: models.AssetTypeStock}},
	}
	news := []models.NewsItem{
		{Title: "Markets drift ahead of jobs report", Summary: "AAPL among the most-traded names", Sentiment: models.SentimentNeutral},
	}

	if matches := matchNews(valued, news); len(matches) != 0 {
		t.Errorf("expected no match on summary-only mention, got %+v", matches)
	}
}

func TestValuate_LivePriceFallback(t *testing.T) {
	prices := &mockPriceClient{prices: map[string]float64{"AAPL": 180}}
	svc := NewService(DefaultConfig(), prices, nil, 0, common.NewSilentLogger())

	valued := svc.Valuate(context.Background(), []models.Holding{
		{Symbol: "AAPL", Quantity: 2, CostBasis: 150},
		{Symbol: "UNKNOWN", Quantity: 1, CostBasis: 50},
	})

	if !valued[0].LivePrice || valued[0].CurrentPrice != 180 {
		t.Errorf("expected live price 180 for AAPL, got %+v", valued[0])
	}
	if math.Abs(valued[0].GainLossPct-20) > 0.001 {
		t.Errorf("expected +20%% gain, got %.2f", valued[0].GainLossPct)
	}
	// Unknown symbol falls back to cost basis: flat valuation
	if valued[1].LivePrice || valued[1].CurrentPrice != 50 {
		t.Errorf("expected cost basis fallback for UNKNOWN, got %+v", valued[1])
	}
	if valued[1].GainLossPct != 0 {
		t.Errorf("expected 0%% gain on cost basis fallback, got %.2f", valued[1].GainLossPct)
	}
}

func TestAssetRisks_Levels(t *testing.T) {
	valued := []ValuedHolding{
		{Holding: models.Holding{Symbol: "DEEP"}, GainLossPct: -20},
		{Holding: models.Holding{Symbol: "DOWN"}, GainLossPct: -10},
		{Holding: models.Holding{Symbol: "FLAT"}, GainLossPct: -2},
		{Holding: models.Holding{Symbol: "UP"}, GainLossPct: 30},
	}

	risks := assetRisks(valued)
	expected := map[string]models.RiskLevel{
		"DEEP": models.RiskLevelHigh,
		"DOWN": models.RiskLevelMedium,
		"FLAT": models.RiskLevelLow,
		"UP":   models.RiskLevelLow,
	}
	for _, r := range risks {
		if r.Level != expected[r.Symbol] {
			t.Errorf("%s: expected %s, got %s", r.Symbol, expected[r.Symbol], r.Level)
		}
	}
}

func TestGenerateNarrative_LLMTimeoutFallsBack(t *testing.T) {
	slow := &mockGemini{response: "never arrives", delay: 200 * time.Millisecond}
	svc := NewService(DefaultConfig(), nil, slow, 20*time.Millisecond, common.NewSilentLogger())

	report := &models.RiskReport{
		OverallRisk: models.RiskLevelMedium,
		Score:       55,
	}

	narrative := svc.generateNarrative(context.Background(), report)
	if !strings.Contains(narrative, "55.0") {
		t.Errorf("expected rule-based fallback narrative, got %q", narrative)
	}
}

func TestGenerateNarrative_UsesLLMResponse(t *testing.T) {
	llm := &mockGemini{response: "  Your portfolio looks balanced overall.  "}
	svc := NewService(DefaultConfig(), nil, llm, time.Second, common.NewSilentLogger())

	narrative := svc.generateNarrative(context.Background(), &models.RiskReport{})
	if narrative != "Your portfolio looks balanced overall." {
		t.Errorf("expected trimmed LLM narrative, got %q", narrative)
	}
}

func TestGenerateNarrative_LLMErrorFallsBack(t *testing.T) {
	llm := &mockGemini{err: errors.New("quota exceeded")}
	svc := NewService(DefaultConfig(), nil, llm, time.Second, common.NewSilentLogger())

	report := &models.RiskReport{OverallRisk: models.RiskLevelLow, Score: 20}
	narrative := svc.generateNarrative(context.Background(), report)
	if !strings.Contains(narrative, "low") {
		t.Errorf("expected fallback narrative mentioning risk level, got %q", narrative)
	}
}
