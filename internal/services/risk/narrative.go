package risk

import (
	"context"
	"fmt"
	"strings"

	"github.com/finbuddy/finbuddy/internal/models"
)

// generateNarrative produces a plain-language summary of the report.
// The Gemini client is tried first with a bounded timeout; any failure
// falls back to the rule-based narrative so reports never block or fail
// on the LLM.
func (s *Service) generateNarrative(ctx context.Context, report *models.RiskReport) string {
	if s.gemini == nil {
		return fallbackNarrative(report)
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.narrativeTimeout)
	defer cancel()

	text, err := s.gemini.GenerateContent(llmCtx, buildNarrativePrompt(report))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Narrative generation failed, using rule-based fallback")
		return fallbackNarrative(report)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackNarrative(report)
	}
	return text
}

// buildNarrativePrompt creates the risk summary prompt
func buildNarrativePrompt(report *models.RiskReport) string {
	var sb strings.Builder

	sb.WriteString("You are a portfolio risk analyst. Summarize the following risk analysis ")
	sb.WriteString("in 2-3 plain-language sentences for a retail investor. ")
	sb.WriteString("Do not use markdown or bullet points.\n\n")

	fmt.Fprintf(&sb, "Overall risk: %s (score %.1f/100)\n", report.OverallRisk, report.Score)
	fmt.Fprintf(&sb, "Portfolio: %d holdings, total value $%.2f, gain/loss %.1f%%\n",
		report.Summary.TotalHoldings, report.Summary.TotalValue, report.Summary.TotalGainLossPct)
	fmt.Fprintf(&sb, "Concentration: top holding %s at %.1f%% (score %.0f)\n",
		report.Concentration.TopHolding, report.Concentration.TopHoldingPct, report.Concentration.Score)
	fmt.Fprintf(&sb, "Volatility: %s, return stddev %.1f%% (score %.0f)\n",
		report.Volatility.VarianceLevel, report.Volatility.StdDeviation, report.Volatility.Score)
	fmt.Fprintf(&sb, "Sector exposure: %s at %.1f%% (score %.0f)\n",
		report.SectorExposure.DominantSector, report.SectorExposure.DominantSectorPct, report.SectorExposure.Score)
	fmt.Fprintf(&sb, "News sentiment: avg %.2f over %d matched articles (score %.0f)\n",
		report.NewsSentiment.AvgSentiment, report.NewsSentiment.TotalMatches, report.NewsSentiment.Score)

	if len(report.Alerts) > 0 {
		sb.WriteString("Alerts:\n")
		for _, alert := range report.Alerts {
			fmt.Fprintf(&sb, "- %s\n", alert)
		}
	}

	return sb.String()
}

// fallbackNarrative builds a deterministic summary when no LLM is available
func fallbackNarrative(report *models.RiskReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Your portfolio risk is %s with a score of %.1f out of 100.",
		strings.ToLower(string(report.OverallRisk)), report.Score)

	if report.Concentration.TopHolding != "" {
		fmt.Fprintf(&sb, " The largest position, %s, makes up %.1f%% of total value.",
			report.Concentration.TopHolding, report.Concentration.TopHoldingPct)
	}

	switch {
	case len(report.Alerts) > 1:
		fmt.Fprintf(&sb, " There are %d active alerts; the most pressing: %s.", len(report.Alerts), report.Alerts[0])
	case len(report.Alerts) == 1:
		fmt.Fprintf(&sb, " One alert is active: %s.", report.Alerts[0])
	default:
		sb.WriteString(" No risk alerts are active.")
	}

	if report.NewsSentiment.TotalMatches > 0 {
		tone := "neutral"
		if report.NewsSentiment.AvgSentiment > 0 {
			tone = "positive"
		} else if report.NewsSentiment.AvgSentiment < 0 {
			tone = "negative"
		}
		fmt.Fprintf(&sb, " Recent news coverage of your holdings is %s on average.", tone)
	}

	return sb.String()
}
