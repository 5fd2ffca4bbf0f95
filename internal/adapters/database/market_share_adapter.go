package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	"github.com/kestrelhq/insight-backend/internal/domain/repositories"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kestrelhq/insight-backend/pkg/errors"
)

// MarketShareAdapter reads attention-share snapshots from Postgres. The
// engine and intent breakdowns live in jsonb columns.
type MarketShareAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMarketShareAdapter creates a new market share adapter.
func NewMarketShareAdapter(client *postgres.Client) repositories.MarketShareRepository {
	return &MarketShareAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Latest returns the most recent report by generated_at for the
// (user, project) pair, or a NOT_FOUND error.
func (a *MarketShareAdapter) Latest(ctx context.Context, userID, projectID string) (*entities.MarketShareReport, error) {
	query, args, err := a.db.From("market_share_reports").
		Select("market_share_score", "ai_mention_share_pct", "organic_share_pct",
			"engine_breakdown", "intent_breakdown", "generated_at").
		Where(goqu.Ex{"user_id": userID, "project_id": projectID}).
		Order(goqu.C("generated_at").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build market share query", err)
	}

	r := &entities.MarketShareReport{}
	var engineJSON, intentJSON []byte
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	err = row.Scan(&r.MarketShareScore, &r.AIMentionSharePct, &r.OrganicSharePct,
		&engineJSON, &intentJSON, &r.GeneratedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no market share report")
		}
		return nil, apperrors.NewInternalError("failed to get market share report", err)
	}

	if len(engineJSON) > 0 {
		if err := json.Unmarshal(engineJSON, &r.EngineBreakdown); err != nil {
			return nil, apperrors.NewInternalError("failed to decode engine breakdown", err)
		}
	}
	if len(intentJSON) > 0 {
		if err := json.Unmarshal(intentJSON, &r.IntentBreakdown); err != nil {
			return nil, apperrors.NewInternalError("failed to decode intent breakdown", err)
		}
	}

	return r, nil
}
