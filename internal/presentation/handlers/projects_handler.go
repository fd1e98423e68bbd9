package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// ProjectsHandler handles HTTP requests for projects
type ProjectsHandler struct {
	service *services.ProjectService
	logger  *zap.Logger
}

// NewProjectsHandler creates a new projects handler
func NewProjectsHandler(service *services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/v1/projects
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entities.ProjectFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Chain:  q.Get("chain"),
	}

	projects, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list projects")
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// Get handles GET /api/v1/projects/{id}
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get project")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/v1/projects
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}

	project, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create project")
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// Update handles PUT /api/v1/projects/{id}
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in services.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}

	project, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update project")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/v1/projects/{id}
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete project")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
