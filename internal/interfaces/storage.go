package interfaces

import "github.com/finbuddy/finbuddy/internal/models"

// NewsStore persists fetched news articles
type NewsStore interface {
	// SaveArticles appends articles, deduplicating by URL, and returns
	// the number of new articles stored.
	SaveArticles(articles []models.NewsItem) (int, error)
	// RecentArticles returns up to limit articles, newest first.
	RecentArticles(limit int) ([]models.NewsItem, error)
}

// PortfolioStore persists portfolios
type PortfolioStore interface {
	SavePortfolio(p *models.Portfolio) error
	GetPortfolio(id string) (*models.Portfolio, error)
	ListPortfolios() ([]*models.Portfolio, error)
}
