package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/observability"
)

// IntelligenceService defines the report operations used by the handler.
type IntelligenceService interface {
	BuildReport(ctx context.Context, projectID string) (*entities.IntelligenceResponse, error)
	Completeness(ctx context.Context, projectID string) (*entities.DataCompleteness, error)
}

// IntelligenceHandler serves the strategic-intelligence report.
type IntelligenceHandler struct {
	service IntelligenceService
}

// NewIntelligenceHandler creates a new intelligence handler.
func NewIntelligenceHandler(service IntelligenceService) *IntelligenceHandler {
	return &IntelligenceHandler{service: service}
}

// GetIntelligence handles GET /api/intelligence/{projectId}
func (h *IntelligenceHandler) GetIntelligence(w http.ResponseWriter, r *http.Request) {
	projectID := strings.TrimSpace(r.PathValue("projectId"))
	if projectID == "" {
		respondWithError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	report, err := h.service.BuildReport(r.Context(), projectID)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("project_id", projectID).
			Msg("failed to build intelligence report")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// GetCompleteness handles GET /api/intelligence/{projectId}/completeness
func (h *IntelligenceHandler) GetCompleteness(w http.ResponseWriter, r *http.Request) {
	projectID := strings.TrimSpace(r.PathValue("projectId"))
	if projectID == "" {
		respondWithError(w, http.StatusBadRequest, "project ID is required")
		return
	}

	completeness, err := h.service.Completeness(r.Context(), projectID)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("project_id", projectID).
			Msg("failed to compute data completeness")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, completeness)
}
