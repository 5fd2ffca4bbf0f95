package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	"github.com/kestrelhq/insight-backend/internal/domain/repositories"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kestrelhq/insight-backend/pkg/errors"
)

// AIResponseAdapter reads brand-monitoring sessions and response rows from
// Postgres. Both tables are written by the external monitoring job; this
// adapter never mutates them.
type AIResponseAdapter struct {
	client *postgres.Client
}

// NewAIResponseAdapter creates a new AI response adapter.
func NewAIResponseAdapter(client *postgres.Client) repositories.AIResponseRepository {
	return &AIResponseAdapter{client: client}
}

// LatestCompletedSession returns the most recent completed session for the
// project, or a NOT_FOUND error when the project has never completed a run.
func (a *AIResponseAdapter) LatestCompletedSession(ctx context.Context, projectID string) (*entities.AnalysisSession, error) {
	query := `
		SELECT id, project_id, status, total_queries, COALESCE(results_total_queries, 0), created_at
		FROM analysis_sessions
		WHERE project_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	s := &entities.AnalysisSession{}
	row := a.client.DB().QueryRowContext(ctx, query, projectID, entities.SessionStatusCompleted)
	err := row.Scan(&s.ID, &s.ProjectID, &s.Status, &s.TotalQueries, &s.ResultsTotalQueries, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no completed analysis session")
		}
		return nil, apperrors.NewInternalError("failed to get latest analysis session", err)
	}

	return s, nil
}

// ListSessionResponses returns every response row of one session.
func (a *AIResponseAdapter) ListSessionResponses(ctx context.Context, sessionID string) ([]entities.AIResponse, error) {
	query := `
		SELECT id, session_id, platform, brand_mentioned
		FROM ai_responses
		WHERE session_id = $1
	`

	rows, err := a.client.DB().QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list session responses", err)
	}
	defer rows.Close()

	var responses []entities.AIResponse
	for rows.Next() {
		var r entities.AIResponse
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Platform, &r.BrandMentioned); err != nil {
			return nil, apperrors.NewInternalError("failed to scan AI response", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate AI responses", err)
	}

	return responses, nil
}
