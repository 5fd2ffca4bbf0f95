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

// BlindSpotAdapter reads coverage-gap snapshots from Postgres. The itemized
// blind spots live in a jsonb column exactly as the upstream job wrote them.
type BlindSpotAdapter struct {
	client *postgres.Client
}

// NewBlindSpotAdapter creates a new blind spot adapter.
func NewBlindSpotAdapter(client *postgres.Client) repositories.BlindSpotRepository {
	return &BlindSpotAdapter{client: client}
}

// Get returns the single report for the (user, domain) pair, or a NOT_FOUND
// error.
func (a *BlindSpotAdapter) Get(ctx context.Context, userID, domain string) (*entities.BlindSpotReport, error) {
	query := `
		SELECT total_blind_spots, avg_blind_spot_score, ai_blind_spot_pct, blind_spots
		FROM blind_spot_reports
		WHERE user_id = $1 AND domain = $2
		LIMIT 1
	`

	r := &entities.BlindSpotReport{}
	var itemsJSON []byte
	row := a.client.DB().QueryRowContext(ctx, query, userID, domain)
	err := row.Scan(&r.TotalBlindSpots, &r.AvgBlindSpotScore, &r.AIBlindSpotPct, &itemsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no blind spot report")
		}
		return nil, apperrors.NewInternalError("failed to get blind spot report", err)
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &r.BlindSpots); err != nil {
			return nil, apperrors.NewInternalError("failed to decode blind spots", err)
		}
	}

	return r, nil
}
