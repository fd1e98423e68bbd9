package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
)

// IntelligenceHandler handles HTTP requests for analysis runs
type IntelligenceHandler struct {
	service *services.IntelligenceService
	logger  *zap.Logger
}

// NewIntelligenceHandler creates a new intelligence handler
func NewIntelligenceHandler(service *services.IntelligenceService, logger *zap.Logger) *IntelligenceHandler {
	return &IntelligenceHandler{
		service: service,
		logger:  logger,
	}
}

// AnalyzeRequest selects the analysis to run and its subject
type AnalyzeRequest struct {
	Action    string `json:"action"`
	HolderID  string `json:"holder_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}

// Analyze handles POST /api/v1/intelligence
func (h *IntelligenceHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	switch req.Action {
	case "analyze_holder":
		if req.HolderID == "" {
			respondError(w, http.StatusBadRequest, "holder_id is required")
			return
		}
		result, err := h.service.AnalyzeHolder(ctx, req.HolderID)
		if err != nil {
			respondServiceError(w, h.logger, err, "Holder analysis failed")
			return
		}
		respondJSON(w, http.StatusOK, result)

	case "analyze_project":
		if req.ProjectID == "" {
			respondError(w, http.StatusBadRequest, "project_id is required")
			return
		}
		result, err := h.service.AnalyzeProject(ctx, req.ProjectID)
		if err != nil {
			respondServiceError(w, h.logger, err, "Project analysis failed")
			return
		}
		respondJSON(w, http.StatusOK, result)

	case "discover_trending":
		result, err := h.service.DiscoverTrending(ctx)
		if err != nil {
			respondServiceError(w, h.logger, err, "Trending discovery failed")
			return
		}
		respondJSON(w, http.StatusOK, result)

	default:
		respondError(w, http.StatusBadRequest, "Unknown action")
	}
}

// History handles GET /api/v1/intelligence/history?entity_type=&entity_id=
func (h *IntelligenceHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	runs, err := h.service.History(r.Context(), q.Get("entity_type"), q.Get("entity_id"), queryInt(r, "limit", 20))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load history")
		return
	}
	respondJSON(w, http.StatusOK, runs)
}
