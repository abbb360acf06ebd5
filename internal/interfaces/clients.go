// Package interfaces defines service and client contracts for FinBuddy
package interfaces

import (
	"context"

	"github.com/finbuddy/finbuddy/internal/models"
)

// PriceClient resolves live prices for holdings
type PriceClient interface {
	// GetLivePrice returns the current market price for a symbol.
	// Implementations return an error when the symbol cannot be priced;
	// callers fall back to cost basis.
	GetLivePrice(ctx context.Context, symbol string, assetType models.AssetType) (float64, error)
}

// NewsClient fetches recent market news with sentiment labels
type NewsClient interface {
	GetRecentNews(ctx context.Context, limit int) ([]models.NewsItem, error)
}

// GeminiClient generates text content via the Gemini API
type GeminiClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
