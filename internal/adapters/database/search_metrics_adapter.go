package database

import (
	"context"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	"github.com/kestrelhq/insight-backend/internal/domain/repositories"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/kestrelhq/insight-backend/pkg/errors"
)

// search_console_rows stores three row shapes behind a data_type
// discriminator: 'query' and 'page' rows carry per-key metrics, 'summary'
// rows carry precomputed range totals. The sync job writes them; this
// adapter only reads. Row sets are unbounded, so no LIMIT is applied.
type SearchMetricsAdapter struct {
	client *postgres.Client
}

// NewSearchMetricsAdapter creates a new search metrics adapter.
func NewSearchMetricsAdapter(client *postgres.Client) repositories.SearchMetricsRepository {
	return &SearchMetricsAdapter{client: client}
}

// ListQueryRows returns all query rows for the domain.
func (a *SearchMetricsAdapter) ListQueryRows(ctx context.Context, domain string) ([]entities.SearchQueryRow, error) {
	query := `
		SELECT keyword, clicks, impressions, ctr, position
		FROM search_console_rows
		WHERE domain = $1 AND data_type = 'query'
	`

	rows, err := a.client.DB().QueryContext(ctx, query, domain)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list search query rows", err)
	}
	defer rows.Close()

	var result []entities.SearchQueryRow
	for rows.Next() {
		var r entities.SearchQueryRow
		if err := rows.Scan(&r.Query, &r.Clicks, &r.Impressions, &r.CTR, &r.Position); err != nil {
			return nil, apperrors.NewInternalError("failed to scan search query row", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate search query rows", err)
	}

	return result, nil
}

// ListPageRows returns all page rows for the domain.
func (a *SearchMetricsAdapter) ListPageRows(ctx context.Context, domain string) ([]entities.SearchPageRow, error) {
	query := `
		SELECT page, clicks, impressions, ctr, position
		FROM search_console_rows
		WHERE domain = $1 AND data_type = 'page'
	`

	rows, err := a.client.DB().QueryContext(ctx, query, domain)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list search page rows", err)
	}
	defer rows.Close()

	var result []entities.SearchPageRow
	for rows.Next() {
		var r entities.SearchPageRow
		if err := rows.Scan(&r.Page, &r.Clicks, &r.Impressions, &r.CTR, &r.Position); err != nil {
			return nil, apperrors.NewInternalError("failed to scan search page row", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate search page rows", err)
	}

	return result, nil
}

// ListSummaries returns precomputed summary rows ordered by date ascending.
func (a *SearchMetricsAdapter) ListSummaries(ctx context.Context, domain string) ([]entities.SearchSummary, error) {
	query := `
		SELECT date, total_clicks, total_impressions, avg_ctr, avg_position
		FROM search_console_rows
		WHERE domain = $1 AND data_type = 'summary'
		ORDER BY date ASC
	`

	rows, err := a.client.DB().QueryContext(ctx, query, domain)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list search summaries", err)
	}
	defer rows.Close()

	var result []entities.SearchSummary
	for rows.Next() {
		var s entities.SearchSummary
		if err := rows.Scan(&s.Date, &s.TotalClicks, &s.TotalImpressions, &s.AvgCTR, &s.AvgPosition); err != nil {
			return nil, apperrors.NewInternalError("failed to scan search summary", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate search summaries", err)
	}

	return result, nil
}
