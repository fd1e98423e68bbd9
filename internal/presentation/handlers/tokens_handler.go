package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
)

// TokensHandler handles HTTP requests for tokens
type TokensHandler struct {
	service *services.TokenService
	logger  *zap.Logger
}

// NewTokensHandler creates a new tokens handler
func NewTokensHandler(service *services.TokenService, logger *zap.Logger) *TokensHandler {
	return &TokensHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/v1/tokens
func (h *TokensHandler) List(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list tokens")
		return
	}
	respondJSON(w, http.StatusOK, tokens)
}

// Get handles GET /api/v1/tokens/{id}
func (h *TokensHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get token")
		return
	}
	respondJSON(w, http.StatusOK, token)
}

// Create handles POST /api/v1/tokens
func (h *TokensHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.TokenInput
	if !decodeBody(w, r, &in) {
		return
	}

	token, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create token")
		return
	}
	respondJSON(w, http.StatusCreated, token)
}

// Update handles PUT /api/v1/tokens/{id}
func (h *TokensHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.TokenInput
	if !decodeBody(w, r, &in) {
		return
	}

	token, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update token")
		return
	}
	respondJSON(w, http.StatusOK, token)
}

// Delete handles DELETE /api/v1/tokens/{id}
func (h *TokensHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
