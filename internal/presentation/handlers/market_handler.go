package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
)

// MarketHandler handles HTTP requests for live market lookups
type MarketHandler struct {
	service *services.MarketService
	logger  *zap.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(service *services.MarketService, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		service: service,
		logger:  logger,
	}
}

// TopCoins handles GET /api/v1/market/top
func (h *MarketHandler) TopCoins(w http.ResponseWriter, r *http.Request) {
	coins, err := h.service.TopCoins(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to fetch top coins")
		return
	}
	respondJSON(w, http.StatusOK, coins)
}

// Trending handles GET /api/v1/market/trending
func (h *MarketHandler) Trending(w http.ResponseWriter, r *http.Request) {
	coins, err := h.service.Trending(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to fetch trending coins")
		return
	}
	respondJSON(w, http.StatusOK, coins)
}

// Search handles GET /api/v1/market/search?q=
func (h *MarketHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to search")
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// LookupToken handles GET /api/v1/market/token?chain=&address=
func (h *MarketHandler) LookupToken(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lookup, err := h.service.LookupToken(r.Context(), q.Get("chain"), q.Get("address"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to look up token")
		return
	}
	respondJSON(w, http.StatusOK, lookup)
}

// Mentions handles GET /api/v1/market/mentions?symbol=&name=
func (h *MarketHandler) Mentions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tweets, err := h.service.Mentions(r.Context(), q.Get("symbol"), q.Get("name"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to fetch mentions")
		return
	}
	respondJSON(w, http.StatusOK, tweets)
}
