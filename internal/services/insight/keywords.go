// Package insight derives aggregate market mood from recent news
package insight

// Keywords configures the relevance and risk classification word lists
type Keywords struct {
	// HighRelevance words mark articles squarely about markets
	HighRelevance []string
	// MediumRelevance words mark broader finance coverage
	MediumRelevance []string
	// TrustedSources get a relevance boost regardless of keywords
	TrustedSources []string
	// Danger words push an article to High risk
	Danger []string
	// Caution words push an article to Medium risk
	Caution []string
}

// DefaultKeywords returns the standard classification word lists
func DefaultKeywords() Keywords {
	return Keywords{
		HighRelevance:   []string{"market", "stock", "trading", "economy", "fed", "inflation", "rate", "earnings"},
		MediumRelevance: []string{"finance", "investment", "investor", "wall street", "nasdaq", "dow"},
		TrustedSources:  []string{"Alpha Vantage", "Finnhub"},
		Danger:          []string{"crash", "crisis", "collapse", "threat", "warning", "danger", "fraud"},
		Caution:         []string{"concern", "worry", "decline", "fall", "drop", "risk"},
	}
}
