package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finbuddy/finbuddy/internal/models"
)

// decide produces the proceed/reject verdict for a simulation. The LLM
// is tried first with a bounded timeout; a malformed or missing response
// falls back to the rule-based verdict.
func (s *Service) decide(ctx context.Context, result *models.SimulationResult, profile models.RiskProfile) models.Decision {
	if s.gemini == nil {
		return ruleBasedDecision(result, profile)
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.decisionTimeout)
	defer cancel()

	text, err := s.gemini.GenerateContent(llmCtx, buildDecisionPrompt(result, profile))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Decision generation failed, using rule-based fallback")
		return ruleBasedDecision(result, profile)
	}

	decision, err := parseDecision(text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Decision response malformed, using rule-based fallback")
		return ruleBasedDecision(result, profile)
	}
	return decision
}

// buildDecisionPrompt creates the simulation verdict prompt
func buildDecisionPrompt(result *models.SimulationResult, profile models.RiskProfile) string {
	var sb strings.Builder

	sb.WriteString("You are a portfolio advisor. Decide whether the investor should proceed ")
	sb.WriteString("with the proposed portfolio change. Respond with ONLY a JSON object with ")
	sb.WriteString("these exact keys: should_proceed (bool), reasoning (string), ")
	sb.WriteString("warnings (array of strings), confidence (number 0-1).\n\n")

	fmt.Fprintf(&sb, "Investor profile: %s risk appetite, %d year horizon",
		profile.RiskAppetite, profile.HorizonYears)
	if profile.InvestmentGoal != "" {
		fmt.Fprintf(&sb, ", goal: %s", profile.InvestmentGoal)
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Current portfolio: risk %.1f, diversification %.1f, top holding %.1f%%, value $%.2f\n",
		result.Current.RiskScore, result.Current.DiversificationScore,
		result.Current.TopHoldingPct, result.Current.TotalValue)
	fmt.Fprintf(&sb, "Proposed portfolio: risk %.1f, diversification %.1f, top holding %.1f%%, value $%.2f\n",
		result.Proposed.RiskScore, result.Proposed.DiversificationScore,
		result.Proposed.TopHoldingPct, result.Proposed.TotalValue)
	fmt.Fprintf(&sb, "Deltas: risk %+.1f, diversification %+.1f\n",
		result.Deltas.RiskScore, result.Deltas.DiversificationScore)

	return sb.String()
}

// parseDecision parses the LLM response, requiring all four keys
func parseDecision(text string) (models.Decision, error) {
	cleaned := stripJSONFences(text)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return models.Decision{}, fmt.Errorf("invalid decision JSON: %w", err)
	}
	for _, key := range []string{"should_proceed", "reasoning", "warnings", "confidence"} {
		if _, ok := raw[key]; !ok {
			return models.Decision{}, fmt.Errorf("decision JSON missing %q", key)
		}
	}

	var decision models.Decision
	if err := json.Unmarshal([]byte(cleaned), &decision); err != nil {
		return models.Decision{}, fmt.Errorf("invalid decision fields: %w", err)
	}
	return decision, nil
}

// stripJSONFences removes markdown code fences around a JSON payload
func stripJSONFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// ruleBasedDecision applies deterministic proceed/reject rules
func ruleBasedDecision(result *models.SimulationResult, profile models.RiskProfile) models.Decision {
	var reasons, warnings []string

	reject := false
	if profile.RiskAppetite == models.RiskAppetiteLow && result.Deltas.RiskScore > 10 {
		reject = true
		reasons = append(reasons, fmt.Sprintf("risk increases by %.1f points, which exceeds a low risk appetite", result.Deltas.RiskScore))
	}
	if result.Deltas.DiversificationScore < -15 {
		reject = true
		reasons = append(reasons, fmt.Sprintf("diversification drops by %.1f points", -result.Deltas.DiversificationScore))
	}
	if result.Proposed.TopHoldingPct > 50 {
		reject = true
		reasons = append(reasons, fmt.Sprintf("proposed top holding would be %.1f%% of the portfolio", result.Proposed.TopHoldingPct))
	}

	if profile.RiskAppetite == models.RiskAppetiteHigh && result.Deltas.RiskScore < -20 {
		warnings = append(warnings, "the change is much more conservative than your stated risk appetite")
	}
	if result.Deltas.DiversificationScore > 20 {
		warnings = append(warnings, "diversification improves substantially; consider phasing the change in")
	}
	if profile.HorizonYears < 3 && result.Proposed.RiskScore > 70 {
		warnings = append(warnings, "proposed risk is high for a short investment horizon")
	}

	if reject {
		return models.Decision{
			ShouldProceed: false,
			Reasoning:     "Not recommended: " + strings.Join(reasons, "; ") + ".",
			Warnings:      warnings,
			Confidence:    0.75,
		}
	}
	return models.Decision{
		ShouldProceed: true,
		Reasoning:     "The proposed change stays within your risk profile and keeps the portfolio reasonably diversified.",
		Warnings:      warnings,
		Confidence:    0.65,
	}
}
