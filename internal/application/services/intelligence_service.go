package services

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
	"github.com/kestrelhq/insight-backend/internal/domain/repositories"
	"github.com/kestrelhq/insight-backend/internal/infrastructure/observability"
	apperrors "github.com/kestrelhq/insight-backend/pkg/errors"
)

const pointsPerSource = 20

// IntelligenceService assembles the strategic-intelligence report: it fans
// out the five independent source reads, runs the pure scorers, blends the
// composites and builds the decision-logic block. The whole pipeline is
// read-only; two concurrent requests never interact.
type IntelligenceService struct {
	projects      repositories.ProjectRepository
	aiResponses   repositories.AIResponseRepository
	searchMetrics repositories.SearchMetricsRepository
	marketShare   repositories.MarketShareRepository
	blindSpots    repositories.BlindSpotRepository
	gapReports    repositories.GapReportRepository

	aiScorer        *AIVisibilityScorer
	searchScorer    *SearchPerformanceScorer
	attentionScorer *AttentionShareScorer
	blindSpotScorer *BlindSpotScorer
	gapScorer       *GapAnalysisScorer

	metrics *observability.Metrics
}

// NewIntelligenceService creates a new intelligence service. metrics may be
// nil when observability is disabled.
func NewIntelligenceService(
	projects repositories.ProjectRepository,
	aiResponses repositories.AIResponseRepository,
	searchMetrics repositories.SearchMetricsRepository,
	marketShare repositories.MarketShareRepository,
	blindSpots repositories.BlindSpotRepository,
	gapReports repositories.GapReportRepository,
	metrics *observability.Metrics,
) *IntelligenceService {
	return &IntelligenceService{
		projects:        projects,
		aiResponses:     aiResponses,
		searchMetrics:   searchMetrics,
		marketShare:     marketShare,
		blindSpots:      blindSpots,
		gapReports:      gapReports,
		aiScorer:        NewAIVisibilityScorer(),
		searchScorer:    NewSearchPerformanceScorer(),
		attentionScorer: NewAttentionShareScorer(),
		blindSpotScorer: NewBlindSpotScorer(),
		gapScorer:       NewGapAnalysisScorer(),
		metrics:         metrics,
	}
}

// sourceData holds the raw rows of the five sources. A nil report or empty
// row set means the source is absent, which is never an error.
type sourceData struct {
	session   *entities.AnalysisSession
	responses []entities.AIResponse

	queryRows []entities.SearchQueryRow
	pageRows  []entities.SearchPageRow
	summaries []entities.SearchSummary

	marketShare *entities.MarketShareReport
	blindSpot   *entities.BlindSpotReport
	gap         *entities.GapReport
}

// BuildReport produces the full intelligence response for one project.
// Returns a NOT_FOUND error when the project itself is unknown; any source
// being absent degrades that source's score to zero instead of failing.
func (s *IntelligenceService) BuildReport(ctx context.Context, projectID string) (*entities.IntelligenceResponse, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchSources(ctx, project)
	if err != nil {
		return nil, err
	}

	aiScore, aiDetails := s.aiScorer.Score(data.session, data.responses)
	seoScore, seoDetails := s.searchScorer.Score(data.queryRows, data.pageRows, data.summaries)
	shareScore, shareDetails := s.attentionScorer.Score(data.marketShare)
	riskScore, riskDetails := s.blindSpotScorer.Score(data.blindSpot)
	gapScore, gapDetails := s.gapScorer.Score(data.gap)

	inputs := CompositeInputs{
		AIVisibility:     aiScore,
		SEOPresence:      seoScore,
		ShareOfAttention: shareScore,
		RiskExposure:     riskScore,
		GapAnalysis:      gapScore,
	}
	if seoDetails != nil {
		inputs.OpportunityQueryCount = seoDetails.OpportunityQueryCount
		inputs.OpportunityQueryListLen = len(seoDetails.OpportunityQueries)
	}
	scores := ComputeScores(inputs)

	completeness := buildCompleteness(data)
	brief := BuildExecutiveBrief(scores)

	aiAvailable := completeness.AIVisibility
	searchAvailable := completeness.SearchConsole
	shareAvailable := completeness.MarketShare
	blindSpotAvailable := completeness.BlindSpots
	gapAvailable := completeness.GapAnalysis

	reports := entities.ReportSet{
		ExecutiveBrief:   entities.ReportBlock{Available: true, Score: brief.OverallHealth, Details: brief},
		AIVisibility:     block(aiAvailable, scores.AIVisibility, aiDetails),
		SEOAnalysis:      block(searchAvailable, scores.SEOPresence, seoDetails),
		ShareOfAttention: block(shareAvailable, scores.ShareOfAttention, shareDetails),
		RiskMatrix:       block(blindSpotAvailable, scores.RiskExposure, riskDetails),
		CompetitiveAudit: block(shareAvailable, scores.CompetitivePosition, shareDetails),
		GapAnalysis:      block(gapAvailable, gapScore, gapDetails),
	}

	if searchAvailable && seoDetails != nil {
		reports.OpportunityEngine = entities.ReportBlock{
			Available: true,
			Score:     scores.OpportunityScore,
			Details: &entities.OpportunityDetails{
				OpportunityQueryCount: seoDetails.OpportunityQueryCount,
				Queries:               seoDetails.OpportunityQueries,
			},
		}
	} else {
		reports.OpportunityEngine = entities.ReportBlock{Score: scores.OpportunityScore}
	}

	if aiAvailable || searchAvailable || blindSpotAvailable || gapAvailable {
		reports.DigitalControl = entities.ReportBlock{
			Available: true,
			Score:     scores.DigitalControlScore,
			Details: &entities.DigitalControlDetails{
				AIVisibility: scores.AIVisibility,
				SEOPresence:  scores.SEOPresence,
				RiskExposure: scores.RiskExposure,
				GapAnalysis:  gapScore,
			},
		}
	} else {
		reports.DigitalControl = entities.ReportBlock{Score: scores.DigitalControlScore}
	}

	if aiAvailable || searchAvailable {
		reports.RevenueArchitecture = entities.ReportBlock{
			Available: true,
			Score:     scores.RevenueReadiness,
			Details: &entities.RevenueReadinessDetails{
				SEOPresence:    scores.SEOPresence,
				AIVisibility:   scores.AIVisibility,
				AuthorityScore: scores.AuthorityScore,
			},
		}
	} else {
		reports.RevenueArchitecture = entities.ReportBlock{Score: scores.RevenueReadiness}
	}

	return &entities.IntelligenceResponse{
		Project:          project,
		Scores:           scores,
		Reports:          reports,
		DecisionLogic:    BuildDecisionLogic(scores),
		DataCompleteness: completeness,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// Completeness reports which sources are present for a project without
// building the full report. The dashboard probes this before rendering.
func (s *IntelligenceService) Completeness(ctx context.Context, projectID string) (*entities.DataCompleteness, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchSources(ctx, project)
	if err != nil {
		return nil, err
	}

	completeness := buildCompleteness(data)
	return &completeness, nil
}

// fetchSources reads the five sources concurrently. None depends on
// another's result, so the reads join before any scoring begins. NOT_FOUND
// from a repository marks the source absent; any other error fails the
// request.
func (s *IntelligenceService) fetchSources(ctx context.Context, project *entities.Project) (*sourceData, error) {
	data := &sourceData{}
	errs := make([]error, 5)

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		defer s.observeFetch(ctx, "ai_responses", time.Now())
		session, err := s.aiResponses.LatestCompletedSession(ctx, project.ID)
		if err != nil {
			errs[0] = ignoreNotFound(err)
			return
		}
		data.session = session
		responses, err := s.aiResponses.ListSessionResponses(ctx, session.ID)
		if err != nil {
			errs[0] = ignoreNotFound(err)
			return
		}
		data.responses = responses
	}()

	go func() {
		defer wg.Done()
		defer s.observeFetch(ctx, "search_console", time.Now())
		var err error
		if data.queryRows, err = s.searchMetrics.ListQueryRows(ctx, project.Domain); err != nil {
			errs[1] = err
			return
		}
		if data.pageRows, err = s.searchMetrics.ListPageRows(ctx, project.Domain); err != nil {
			errs[1] = err
			return
		}
		if data.summaries, err = s.searchMetrics.ListSummaries(ctx, project.Domain); err != nil {
			errs[1] = err
		}
	}()

	go func() {
		defer wg.Done()
		defer s.observeFetch(ctx, "market_share", time.Now())
		report, err := s.marketShare.Latest(ctx, project.UserID, project.ID)
		if err != nil {
			errs[2] = ignoreNotFound(err)
			return
		}
		data.marketShare = report
	}()

	go func() {
		defer wg.Done()
		defer s.observeFetch(ctx, "blind_spots", time.Now())
		report, err := s.blindSpots.Get(ctx, project.UserID, project.Domain)
		if err != nil {
			errs[3] = ignoreNotFound(err)
			return
		}
		data.blindSpot = report
	}()

	go func() {
		defer wg.Done()
		defer s.observeFetch(ctx, "gap_report", time.Now())
		report, err := s.gapReports.Get(ctx, project.UserID, project.Domain)
		if err != nil {
			errs[4] = ignoreNotFound(err)
			return
		}
		data.gap = report
	}()

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, apperrors.NewInternalError("failed to read intelligence sources", err)
		}
	}

	return data, nil
}

func (s *IntelligenceService) observeFetch(ctx context.Context, source string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.SourceFetchTime.Record(ctx, float64(time.Since(start).Milliseconds()),
		metric.WithAttributes(attribute.String("source", source)))
}

func ignoreNotFound(err error) error {
	if apperrors.IsNotFound(err) {
		return nil
	}
	return err
}

func buildCompleteness(data *sourceData) entities.DataCompleteness {
	c := entities.DataCompleteness{
		AIVisibility:  data.session != nil && len(data.responses) > 0,
		SearchConsole: len(data.queryRows) > 0 || len(data.pageRows) > 0 || len(data.summaries) > 0,
		MarketShare:   data.marketShare != nil,
		BlindSpots:    data.blindSpot != nil,
		GapAnalysis:   data.gap != nil,
	}

	present := 0
	for _, ok := range []bool{c.AIVisibility, c.SearchConsole, c.MarketShare, c.BlindSpots, c.GapAnalysis} {
		if ok {
			present++
		}
	}
	c.CompletenessScore = pointsPerSource * present
	return c
}

// block builds a report block whose details are nil unless the source was
// present. Details arrive as typed pointers; a nil pointer must not leak into
// the response as a typed non-nil interface.
func block[T any](available bool, score float64, details *T) entities.ReportBlock {
	b := entities.ReportBlock{Available: available, Score: score}
	if available && details != nil {
		b.Details = details
	}
	return b
}
