package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
)

// StatsHandler handles HTTP requests for dashboard statistics
type StatsHandler struct {
	service *services.StatsService
	logger  *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *services.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger,
	}
}

// Overview handles GET /api/v1/stats
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
