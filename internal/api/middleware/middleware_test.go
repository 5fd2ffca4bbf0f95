package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kestrelhq/insight-backend/internal/api/middleware"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func TestAuthMiddleware(t *testing.T) {
	wrapped := middleware.AuthMiddleware("secret-token")(okHandler(`{"ok":true}`))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
		req.Header.Set("Authorization", "Bearer secret-token")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
		req.Header.Set("Authorization", "Bearer other-token")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-api paths skip the check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty configured token disables auth", func(t *testing.T) {
		open := middleware.AuthMiddleware("")(okHandler(`{"ok":true}`))
		req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
		rec := httptest.NewRecorder()
		open.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestObservabilityMiddleware_SpanUsesRoutePattern(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/intelligence/{projectId}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	wrapped := middleware.ObservabilityMiddleware(nil)(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	// The matched pattern, not the raw path with its per-project id
	assert.Equal(t, "GET /api/intelligence/{projectId}", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(),
		attribute.String("http.route", "GET /api/intelligence/{projectId}"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status_code", http.StatusOK))
}

// memoryCache is an in-process CacheProvider for middleware tests.
type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestCacheMiddleware(t *testing.T) {
	t.Run("miss then hit", func(t *testing.T) {
		cache := newMemoryCache()
		calls := 0
		wrapped := middleware.NewCacheMiddleware(cache, nil).Middleware(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"scores":{}}`))
			}))

		req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)

		first := httptest.NewRecorder()
		wrapped.ServeHTTP(first, req)
		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
		assert.Equal(t, 1, cache.sets)

		second := httptest.NewRecorder()
		wrapped.ServeHTTP(second, req)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
		assert.Equal(t, `{"scores":{}}`, second.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		cache := newMemoryCache()
		wrapped := middleware.NewCacheMiddleware(cache, nil).Middleware(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"project not found"}`))
			}))

		req := httptest.NewRequest(http.MethodGet, "/api/intelligence/missing", nil)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("uncached routes pass through", func(t *testing.T) {
		cache := newMemoryCache()
		wrapped := middleware.NewCacheMiddleware(cache, nil).Middleware(okHandler(`{"status":"healthy"}`))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("nil cache passes through", func(t *testing.T) {
		wrapped := middleware.NewCacheMiddleware(nil, nil).Middleware(okHandler(`{}`))

		req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
