package repositories

import (
	"context"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// The five source repositories below are read-only views over rows that
// external jobs materialize. Single-row lookups return a NOT_FOUND error when
// the snapshot is absent; list methods return empty slices. The aggregator
// treats both as source absence, never as a request failure.

// AIResponseRepository reads brand-monitoring sessions and their responses
type AIResponseRepository interface {
	// LatestCompletedSession returns the most recent completed session for
	// the project
	LatestCompletedSession(ctx context.Context, projectID string) (*entities.AnalysisSession, error)

	// ListSessionResponses returns every response row of one session
	ListSessionResponses(ctx context.Context, sessionID string) ([]entities.AIResponse, error)
}

// SearchMetricsRepository reads search-console rows for a domain
type SearchMetricsRepository interface {
	// ListQueryRows returns all query rows for the domain, unbounded
	ListQueryRows(ctx context.Context, domain string) ([]entities.SearchQueryRow, error)

	// ListPageRows returns all page rows for the domain, unbounded
	ListPageRows(ctx context.Context, domain string) ([]entities.SearchPageRow, error)

	// ListSummaries returns precomputed summary rows ordered by date ascending
	ListSummaries(ctx context.Context, domain string) ([]entities.SearchSummary, error)
}

// MarketShareRepository reads competitive attention-share snapshots
type MarketShareRepository interface {
	// Latest returns the most recent report by generated_at for the
	// (user, project) pair
	Latest(ctx context.Context, userID, projectID string) (*entities.MarketShareReport, error)
}

// BlindSpotRepository reads the coverage-gap snapshot
type BlindSpotRepository interface {
	// Get returns the single report for the (user, domain) pair
	Get(ctx context.Context, userID, domain string) (*entities.BlindSpotReport, error)
}

// GapReportRepository reads the search-vs-AI gap snapshot
type GapReportRepository interface {
	// Get returns the single report for the (user, domain) pair
	Get(ctx context.Context, userID, domain string) (*entities.GapReport, error)
}
