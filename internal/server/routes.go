package server

import "net/http"

// registerRoutes wires all REST API endpoints.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	mux.HandleFunc("/api/portfolio", s.handleGetPortfolio)
	mux.HandleFunc("/api/portfolio/holdings", s.handleAddHolding)
	mux.HandleFunc("/api/portfolio/simulate", s.handleSimulate)

	mux.HandleFunc("/api/risk/report", s.handleRiskReport)
	mux.HandleFunc("/api/risk/chart", s.handleRiskChart)

	mux.HandleFunc("/api/ai/market-insights", s.handleMarketInsights)

	mux.HandleFunc("/api/news/latest", s.handleLatestNews)
	mux.HandleFunc("/api/news/refresh", s.handleRefreshNews)
}
