package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
)

// EventsHandler handles HTTP requests for the event log
type EventsHandler struct {
	service *services.EventService
	logger  *zap.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(service *services.EventService, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/v1/events
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entities.DefaultEventFilter()
	filter.Limit = queryInt(r, "limit", filter.Limit)
	filter.Offset = queryInt(r, "offset", filter.Offset)
	if v := q.Get("project_id"); v != "" {
		filter.ProjectID = &v
	}
	if v := q.Get("type"); v != "" {
		filter.Type = &v
	}
	if v := q.Get("severity"); v != "" {
		filter.Severity = &v
	}

	events, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// Create handles POST /api/v1/events
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.EventInput
	if !decodeBody(w, r, &in) {
		return
	}

	event, err := h.service.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create event")
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// Delete handles DELETE /api/v1/events/{id}
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete event")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
