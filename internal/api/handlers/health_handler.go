package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is the slice of the database client the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service liveness.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			respondWithError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
