package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/insight-backend/internal/application/services"
	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

func TestFoldQueryRows_PairwisePositionAverage(t *testing.T) {
	rows := []entities.SearchQueryRow{
		{Query: "best crm", Clicks: 10, Impressions: 100, Position: 5},
		{Query: "best crm", Clicks: 5, Impressions: 50, Position: 15},
	}

	folded := services.FoldQueryRows(rows)

	require.Len(t, folded, 1)
	assert.Equal(t, int64(15), folded[0].Clicks)
	assert.Equal(t, int64(150), folded[0].Impressions)
	assert.InDelta(t, 0.1, folded[0].CTR, 1e-9)
	// Running pairwise average, not impression-weighted
	assert.Equal(t, 10.0, folded[0].Position)
}

func TestFoldQueryRows_KeepsDistinctKeys(t *testing.T) {
	rows := []entities.SearchQueryRow{
		{Query: "a", Clicks: 1, Impressions: 10, Position: 3},
		{Query: "b", Clicks: 2, Impressions: 20, Position: 7},
		{Query: "a", Clicks: 3, Impressions: 30, Position: 5},
	}

	folded := services.FoldQueryRows(rows)

	require.Len(t, folded, 2)
	assert.Equal(t, "a", folded[0].Query)
	assert.Equal(t, int64(4), folded[0].Clicks)
	assert.Equal(t, 4.0, folded[0].Position)
	assert.Equal(t, "b", folded[1].Query)
}

func TestSearchPerformanceScorer_NoData(t *testing.T) {
	scorer := services.NewSearchPerformanceScorer()

	score, details := scorer.Score(nil, nil, nil)

	assert.Equal(t, 0.0, score)
	assert.Nil(t, details)
}

func TestSearchPerformanceScorer_SummaryPreferred(t *testing.T) {
	scorer := services.NewSearchPerformanceScorer()

	summaries := []entities.SearchSummary{
		{TotalClicks: 100, TotalImpressions: 5000, AvgCTR: 2.0, AvgPosition: 20},
		{TotalClicks: 600, TotalImpressions: 20000, AvgCTR: 3.0, AvgPosition: 5},
	}

	score, details := scorer.Score(nil, nil, summaries)

	require.NotNil(t, details)
	assert.Equal(t, "summary", details.Source)
	// positionScore=90, ctrScore=30, volumeScore=100
	assert.Equal(t, 90.0, details.PositionScore)
	assert.Equal(t, 30.0, details.CTRScore)
	assert.Equal(t, 100.0, details.VolumeScore)
	// round(31.5 + 9 + 35) = 76
	assert.Equal(t, 76.0, score)
}

func TestSearchPerformanceScorer_DerivedTotals(t *testing.T) {
	scorer := services.NewSearchPerformanceScorer()

	rows := []entities.SearchQueryRow{
		{Query: "a", Clicks: 30, Impressions: 1000, Position: 4},
		{Query: "b", Clicks: 10, Impressions: 1000, Position: 12},
	}

	score, details := scorer.Score(rows, nil, nil)

	require.NotNil(t, details)
	assert.Equal(t, "derived", details.Source)
	assert.Equal(t, int64(40), details.TotalClicks)
	assert.Equal(t, int64(2000), details.TotalImpressions)
	// avgCTR = round2(100 * 40/2000) = 2
	assert.Equal(t, 2.0, details.AvgCTR)
	// avgPosition = round1((4*1000 + 12*1000) / 2000) = 8
	assert.Equal(t, 8.0, details.AvgPosition)
	assert.Equal(t, 1, details.TopRankingQueries)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestSearchPerformanceScorer_OpportunityQueries(t *testing.T) {
	scorer := services.NewSearchPerformanceScorer()

	rows := make([]entities.SearchQueryRow, 0, 14)
	for i := 0; i < 12; i++ {
		rows = append(rows, entities.SearchQueryRow{
			Query:       string(rune('a' + i)),
			Clicks:      int64(i),
			Impressions: int64(100 + i),
			Position:    15,
		})
	}
	// Below the impression floor and above the position floor respectively;
	// neither qualifies as an opportunity.
	rows = append(rows,
		entities.SearchQueryRow{Query: "low-imp", Clicks: 1, Impressions: 40, Position: 20},
		entities.SearchQueryRow{Query: "ranking", Clicks: 50, Impressions: 900, Position: 3},
	)

	_, details := scorer.Score(rows, nil, nil)

	require.NotNil(t, details)
	assert.Equal(t, 12, details.OpportunityQueryCount)
	require.Len(t, details.OpportunityQueries, 10)
	// Sorted by impressions descending
	assert.Equal(t, int64(111), details.OpportunityQueries[0].Impressions)
	// Top performing is sorted by clicks descending and includes the ranker
	assert.Equal(t, "ranking", details.TopPerformingQueries[0].Query)
}

func TestSearchPerformanceScorer_RangeInvariant(t *testing.T) {
	scorer := services.NewSearchPerformanceScorer()

	rows := []entities.SearchQueryRow{
		{Query: "huge", Clicks: 1 << 40, Impressions: 1 << 42, Position: 1},
	}
	pages := []entities.SearchPageRow{
		{Page: "/", Clicks: 1 << 40, Impressions: 1 << 42, Position: 1},
	}

	score, details := scorer.Score(rows, pages, nil)

	require.NotNil(t, details)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
	assert.LessOrEqual(t, details.VolumeScore, 100.0)
	assert.LessOrEqual(t, details.CTRScore, 100.0)
}
