package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	"github.com/kestrelhq/insight-backend/internal/domain/repositories"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kestrelhq/insight-backend/pkg/errors"
)

// GapReportAdapter reads search-vs-AI gap snapshots from Postgres. Queries
// and the per-band tally live in jsonb columns.
type GapReportAdapter struct {
	client *postgres.Client
}

// NewGapReportAdapter creates a new gap report adapter.
func NewGapReportAdapter(client *postgres.Client) repositories.GapReportRepository {
	return &GapReportAdapter{client: client}
}

// Get returns the single report for the (user, domain) pair, or a NOT_FOUND
// error.
func (a *GapReportAdapter) Get(ctx context.Context, userID, domain string) (*entities.GapReport, error) {
	query := `
		SELECT total_queries, queries, band_counts
		FROM gap_reports
		WHERE user_id = $1 AND domain = $2
		LIMIT 1
	`

	r := &entities.GapReport{}
	var queriesJSON, countsJSON []byte
	row := a.client.DB().QueryRowContext(ctx, query, userID, domain)
	err := row.Scan(&r.TotalQueries, &queriesJSON, &countsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no gap report")
		}
		return nil, apperrors.NewInternalError("failed to get gap report", err)
	}

	if len(queriesJSON) > 0 {
		if err := json.Unmarshal(queriesJSON, &r.Queries); err != nil {
			return nil, apperrors.NewInternalError("failed to decode gap queries", err)
		}
	}
	if len(countsJSON) > 0 {
		if err := json.Unmarshal(countsJSON, &r.BandCounts); err != nil {
			return nil, apperrors.NewInternalError("failed to decode band counts", err)
		}
	}

	return r, nil
}
