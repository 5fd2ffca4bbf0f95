package routes

import (
	"net/http"

	"github.com/kestrelhq/insight-backend/internal/api/handlers"
	"github.com/kestrelhq/insight-backend/internal/api/middleware"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	intelligenceHandler *handlers.IntelligenceHandler
	healthHandler       *handlers.HealthHandler

	cacheMiddleware *middleware.CacheMiddleware
	serviceToken    string
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	intelligenceHandler *handlers.IntelligenceHandler,
	healthHandler *handlers.HealthHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	serviceToken string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		intelligenceHandler: intelligenceHandler,
		healthHandler:       healthHandler,
		cacheMiddleware:     cacheMiddleware,
		serviceToken:        serviceToken,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Intelligence endpoints
	r.mux.HandleFunc("GET /api/intelligence/{projectId}", r.intelligenceHandler.GetIntelligence)
	r.mux.HandleFunc("GET /api/intelligence/{projectId}/completeness", r.intelligenceHandler.GetCompleteness)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached and rejected responses also get CORS
	// headers.
	var handler http.Handler = r.mux
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	handler = middleware.AuthMiddleware(r.serviceToken)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
