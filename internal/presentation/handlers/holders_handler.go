package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
)

// HoldersHandler handles HTTP requests for token holders
type HoldersHandler struct {
	service *services.HolderService
	logger  *zap.Logger
}

// NewHoldersHandler creates a new holders handler
func NewHoldersHandler(service *services.HolderService, logger *zap.Logger) *HoldersHandler {
	return &HoldersHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/v1/holders
func (h *HoldersHandler) List(w http.ResponseWriter, r *http.Request) {
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		holders, err := h.service.ListByProject(r.Context(), projectID)
		if err != nil {
			respondServiceError(w, h.logger, err, "Failed to list holders")
			return
		}
		respondJSON(w, http.StatusOK, holders)
		return
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	holders, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list holders")
		return
	}
	respondJSON(w, http.StatusOK, holders)
}

// Get handles GET /api/v1/holders/{id}
func (h *HoldersHandler) Get(w http.ResponseWriter, r *http.Request) {
	holder, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get holder")
		return
	}
	respondJSON(w, http.StatusOK, holder)
}

// Create handles POST /api/v1/holders
func (h *HoldersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.HolderInput
	if !decodeBody(w, r, &in) {
		return
	}

	holder, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create holder")
		return
	}
	respondJSON(w, http.StatusCreated, holder)
}

// Update handles PUT /api/v1/holders/{id}
func (h *HoldersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.HolderInput
	if !decodeBody(w, r, &in) {
		return
	}

	holder, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update holder")
		return
	}
	respondJSON(w, http.StatusOK, holder)
}

// Delete handles DELETE /api/v1/holders/{id}
func (h *HoldersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete holder")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// queryInt parses an integer query parameter, falling back on bad input
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
