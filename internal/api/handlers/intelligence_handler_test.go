package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/insight-backend/internal/api/handlers"
	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	apperrors "github.com/kestrelhq/insight-backend/pkg/errors"
)

type stubIntelligenceService struct {
	report       *entities.IntelligenceResponse
	completeness *entities.DataCompleteness
	err          error
}

func (s *stubIntelligenceService) BuildReport(ctx context.Context, projectID string) (*entities.IntelligenceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubIntelligenceService) Completeness(ctx context.Context, projectID string) (*entities.DataCompleteness, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.completeness, nil
}

func newTestMux(service handlers.IntelligenceService) *http.ServeMux {
	h := handlers.NewIntelligenceHandler(service)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/intelligence/{projectId}", h.GetIntelligence)
	mux.HandleFunc("GET /api/intelligence/{projectId}/completeness", h.GetCompleteness)
	return mux
}

func TestGetIntelligence_Success(t *testing.T) {
	service := &stubIntelligenceService{
		report: &entities.IntelligenceResponse{
			Project: &entities.Project{ID: "proj-1", Name: "Acme", Domain: "acme.example"},
			Scores:  entities.ScoreSet{AIVisibility: 75, SEOPresence: 67},
			DataCompleteness: entities.DataCompleteness{
				AIVisibility:      true,
				SearchConsole:     true,
				CompletenessScore: 40,
			},
		},
	}
	mux := newTestMux(service)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"project", "scores", "reports", "decisionLogic", "dataCompleteness", "generatedAt"} {
		assert.Contains(t, body, key)
	}

	var scores map[string]float64
	require.NoError(t, json.Unmarshal(body["scores"], &scores))
	assert.Equal(t, 75.0, scores["aiVisibility"])
	assert.Equal(t, 67.0, scores["seoPresence"])
}

func TestGetIntelligence_ProjectNotFound(t *testing.T) {
	service := &stubIntelligenceService{err: apperrors.NewNotFoundError("project not found")}
	mux := newTestMux(service)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "project not found", body["error"])
}

func TestGetIntelligence_InternalErrorIsGeneric(t *testing.T) {
	service := &stubIntelligenceService{
		err: apperrors.NewInternalError("failed to read intelligence sources", errors.New("pq: connection refused")),
	}
	mux := newTestMux(service)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestGetIntelligence_BlankProjectID(t *testing.T) {
	h := handlers.NewIntelligenceHandler(&stubIntelligenceService{})

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/x", nil)
	req.SetPathValue("projectId", "   ")
	rec := httptest.NewRecorder()
	h.GetIntelligence(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCompleteness_Success(t *testing.T) {
	service := &stubIntelligenceService{
		completeness: &entities.DataCompleteness{
			AIVisibility:      true,
			MarketShare:       true,
			GapAnalysis:       true,
			CompletenessScore: 60,
		},
	}
	mux := newTestMux(service)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/proj-1/completeness", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body entities.DataCompleteness
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 60, body.CompletenessScore)
	assert.True(t, body.AIVisibility)
	assert.False(t, body.SearchConsole)
}

func TestGetCompleteness_NotFound(t *testing.T) {
	service := &stubIntelligenceService{err: apperrors.NewNotFoundError("project not found")}
	mux := newTestMux(service)

	req := httptest.NewRequest(http.MethodGet, "/api/intelligence/missing/completeness", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error { return s.err }

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := handlers.NewHealthHandler(&stubPinger{})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.Health(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("database down", func(t *testing.T) {
		h := handlers.NewHealthHandler(&stubPinger{err: errors.New("dial tcp: connection refused")})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		h.Health(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
