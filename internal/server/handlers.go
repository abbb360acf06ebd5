package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/finbuddy/finbuddy/internal/models"
	"github.com/finbuddy/finbuddy/internal/services/report"
)

// defaultPortfolioID is the single-user portfolio key.
const defaultPortfolioID = "main"

// handleHealth returns service health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.app.Version(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion returns build information.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": s.app.Version(),
		"build":   s.app.Build(),
	})
}

// handleGetPortfolio returns the stored portfolio, or an empty one.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	p, err := s.app.Store.GetPortfolio(defaultPortfolioID)
	if err != nil {
		p = &models.Portfolio{ID: defaultPortfolioID, Holdings: []models.Holding{}}
	}
	WriteJSON(w, http.StatusOK, p)
}

// addHoldingRequest is the POST /api/portfolio/holdings body.
type addHoldingRequest struct {
	Symbol    string  `json:"symbol"`
	AssetType string  `json:"asset_type"`
	Quantity  float64 `json:"quantity"`
	CostBasis float64 `json:"cost_basis"`
	Sector    string  `json:"sector"`
}

// handleAddHolding appends a holding to the portfolio.
func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req addHoldingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if req.Quantity <= 0 {
		WriteError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.CostBasis < 0 {
		WriteError(w, http.StatusBadRequest, "cost_basis cannot be negative")
		return
	}

	p, err := s.app.Store.GetPortfolio(defaultPortfolioID)
	if err != nil {
		p = &models.Portfolio{ID: defaultPortfolioID}
	}

	p.Holdings = append(p.Holdings, models.Holding{
		Symbol:    req.Symbol,
		AssetType: models.NormalizeAssetType(req.AssetType),
		Quantity:  req.Quantity,
		CostBasis: req.CostBasis,
		Sector:    strings.TrimSpace(req.Sector),
	})

	if err := s.app.Store.SavePortfolio(p); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to save portfolio")
		return
	}

	WriteJSON(w, http.StatusCreated, p)
}

// buildRiskReport runs the risk analysis over the stored portfolio and news.
func (s *Server) buildRiskReport(ctx context.Context) (*models.RiskReport, error) {
	var holdings []models.Holding
	if p, err := s.app.Store.GetPortfolio(defaultPortfolioID); err == nil {
		holdings = p.Holdings
	}

	news, err := s.app.Store.RecentArticles(50)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load stored news for risk analysis")
	}

	analysis, err := s.app.Risk.AnalyzeRisk(ctx, holdings, news)
	if err != nil {
		return nil, err
	}

	if err := s.app.Store.SaveRiskReport(analysis); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to cache risk report")
	}
	return analysis, nil
}

// handleRiskReport runs and returns the full risk analysis.
func (s *Server) handleRiskReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	analysis, err := s.buildRiskReport(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Risk analysis failed")
		WriteError(w, http.StatusInternalServerError, "Risk analysis failed")
		return
	}
	WriteJSON(w, http.StatusOK, analysis)
}

// handleRiskChart renders the sector distribution of the latest risk
// report as a PNG donut chart.
func (s *Server) handleRiskChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	analysis, err := s.app.Store.GetRiskReport()
	if err != nil {
		analysis, err = s.buildRiskReport(r.Context())
		if err != nil {
			s.logger.Error().Err(err).Msg("Risk analysis failed")
			WriteError(w, http.StatusInternalServerError, "Risk analysis failed")
			return
		}
	}

	png, err := report.RenderSectorChart(analysis.SectorExposure.SectorDistribution)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "No sector data to chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleMarketInsights returns the aggregate market mood analysis.
func (s *Server) handleMarketInsights(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	news, err := s.app.Store.RecentArticles(50)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load stored news for insights")
	}

	insights, err := s.app.Insight.MarketInsights(r.Context(), news)
	if err != nil {
		s.logger.Error().Err(err).Msg("Market insight analysis failed")
		WriteError(w, http.StatusInternalServerError, "Market insight analysis failed")
		return
	}
	WriteJSON(w, http.StatusOK, insights)
}

// simulateRequest is the POST /api/portfolio/simulate body.
type simulateRequest struct {
	ProposedHoldings []models.Holding   `json:"proposed_holdings"`
	Profile          models.RiskProfile `json:"profile"`
}

// handleSimulate compares the stored portfolio against a proposed one.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req simulateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.ProposedHoldings) == 0 {
		WriteError(w, http.StatusBadRequest, "proposed_holdings is required")
		return
	}
	if req.Profile.RiskAppetite == "" {
		req.Profile.RiskAppetite = models.RiskAppetiteMedium
	}

	var current []models.Holding
	if p, err := s.app.Store.GetPortfolio(defaultPortfolioID); err == nil {
		current = p.Holdings
	}

	result, err := s.app.Simulation.Simulate(r.Context(), current, req.ProposedHoldings, req.Profile)
	if err != nil {
		s.logger.Error().Err(err).Msg("Simulation failed")
		WriteError(w, http.StatusInternalServerError, "Simulation failed")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// handleLatestNews returns stored articles, newest first.
func (s *Server) handleLatestNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			WriteError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	articles, err := s.app.Store.RecentArticles(limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load stored news")
		WriteError(w, http.StatusInternalServerError, "Failed to load news")
		return
	}
	if articles == nil {
		articles = []models.NewsItem{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

// handleRefreshNews fetches fresh articles from the news provider.
func (s *Server) handleRefreshNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.News == nil {
		WriteError(w, http.StatusServiceUnavailable, "News provider not configured")
		return
	}

	articles, err := s.app.News.GetRecentNews(r.Context(), s.app.Config.Scheduler.NewsFetchLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("News refresh failed")
		WriteError(w, http.StatusBadGateway, "News refresh failed")
		return
	}

	added, err := s.app.Store.SaveArticles(articles)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to store refreshed news")
		WriteError(w, http.StatusInternalServerError, "Failed to store news")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]int{
		"fetched": len(articles),
		"added":   added,
	})
}
