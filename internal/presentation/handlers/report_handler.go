package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/zotalabs/tokenwatch/internal/application/services"
)

// ReportHandler handles HTTP requests for manipulation reports
type ReportHandler struct {
	service *services.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *services.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// Build handles GET /api/v1/report?chain=&address=&symbol=
func (h *ReportHandler) Build(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	report, err := h.service.BuildReport(r.Context(), q.Get("chain"), q.Get("address"), q.Get("symbol"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to build report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}
