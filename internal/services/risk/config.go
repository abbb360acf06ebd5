// Package risk analyzes portfolio risk from holdings and recent news
package risk

// Weights controls how component scores combine into the overall score.
// Weights should sum to 1.0.
type Weights struct {
	Concentration  float64
	Volatility     float64
	Sentiment      float64
	SectorExposure float64
}

// Thresholds holds the scoring cut-offs for each risk analyzer
type Thresholds struct {
	// Concentration: top holding share of total value (percent)
	ConcentrationHighPct   float64
	ConcentrationMediumPct float64

	// Volatility: population stddev of per-holding gain/loss percent
	VolatilityHighStdDev   float64
	VolatilityMediumStdDev float64

	// Sector exposure: dominant sector share of total value (percent)
	SectorHighPct   float64
	SectorMediumPct float64

	// Sentiment: mean matched sentiment score
	SentimentVeryNegative float64
	SentimentNegative     float64
}

// Config bundles the scoring policy for the risk service
type Config struct {
	Weights    Weights
	Thresholds Thresholds

	// MaxSentimentMatches caps the matched-news detail list in reports
	MaxSentimentMatches int
	// MaxSignals caps the opportunity and threat lists
	MaxSignals int
}

// DefaultConfig returns the standard scoring policy
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Concentration:  0.30,
			Volatility:     0.25,
			Sentiment:      0.25,
			SectorExposure: 0.20,
		},
		Thresholds: Thresholds{
			ConcentrationHighPct:   40,
			ConcentrationMediumPct: 25,
			VolatilityHighStdDev:   20,
			VolatilityMediumStdDev: 10,
			SectorHighPct:          50,
			SectorMediumPct:        35,
			SentimentVeryNegative:  -0.3,
			SentimentNegative:      0,
		},
		MaxSentimentMatches: 10,
		MaxSignals:          5,
	}
}
