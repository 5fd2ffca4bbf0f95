package services

import (
	"sort"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

const (
	opportunityMinImpressions = 50
	opportunityMinPosition    = 10
	topRankingMaxPosition     = 10
	topListLimit              = 10
	volumeScoreCeiling        = 10000
)

// SearchPerformanceScorer reproduces the per-page aggregation used by the
// search dashboard and blends position, CTR and volume into one 0-100 score.
// The fold step and the summary step intentionally average position with two
// different formulas; see FoldQueryRows.
type SearchPerformanceScorer struct{}

// NewSearchPerformanceScorer creates a new search performance scorer
func NewSearchPerformanceScorer() *SearchPerformanceScorer {
	return &SearchPerformanceScorer{}
}

// Score folds the raw rows, derives range totals (preferring a precomputed
// summary when one exists) and computes the weighted score plus the derived
// query/page lists. No rows and no summary yields score 0 and nil details.
func (s *SearchPerformanceScorer) Score(
	queryRows []entities.SearchQueryRow,
	pageRows []entities.SearchPageRow,
	summaries []entities.SearchSummary,
) (float64, *entities.SearchDetails) {
	if len(queryRows) == 0 && len(pageRows) == 0 && len(summaries) == 0 {
		return 0, nil
	}

	queries := FoldQueryRows(queryRows)
	pages := FoldPageRows(pageRows)

	var (
		totalClicks      int64
		totalImpressions int64
		avgCTR           float64
		avgPosition      float64
		source           string
	)
	if len(summaries) > 0 {
		// Summaries arrive ordered by date ascending; the newest one covers
		// the requested range.
		latest := summaries[len(summaries)-1]
		totalClicks = latest.TotalClicks
		totalImpressions = latest.TotalImpressions
		avgCTR = latest.AvgCTR
		avgPosition = latest.AvgPosition
		source = "summary"
	} else {
		var weightedPosition float64
		for _, q := range queries {
			totalClicks += q.Clicks
			totalImpressions += q.Impressions
			weightedPosition += q.Position * float64(q.Impressions)
		}
		if totalImpressions > 0 {
			avgCTR = round2(100 * float64(totalClicks) / float64(totalImpressions))
			avgPosition = round1(weightedPosition / float64(totalImpressions))
		}
		source = "derived"
	}

	positionScore := clamp(100-avgPosition*2, 0, 100)
	ctrScore := clamp(avgCTR*10, 0, 100)
	volumeScore := clamp(100*float64(totalImpressions)/volumeScoreCeiling, 0, 100)
	score := clamp(round(0.35*positionScore+0.30*ctrScore+0.35*volumeScore), 0, 100)

	topRanking := 0
	var opportunities []entities.SearchQueryRow
	for _, q := range queries {
		if q.Position <= topRankingMaxPosition {
			topRanking++
		}
		if q.Impressions > opportunityMinImpressions && q.Position > opportunityMinPosition {
			opportunities = append(opportunities, q)
		}
	}
	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Impressions > opportunities[j].Impressions
	})
	opportunityCount := len(opportunities)
	if len(opportunities) > topListLimit {
		opportunities = opportunities[:topListLimit]
	}

	topPerforming := make([]entities.SearchQueryRow, len(queries))
	copy(topPerforming, queries)
	sort.SliceStable(topPerforming, func(i, j int) bool {
		return topPerforming[i].Clicks > topPerforming[j].Clicks
	})
	if len(topPerforming) > topListLimit {
		topPerforming = topPerforming[:topListLimit]
	}

	topPages := make([]entities.SearchPageRow, len(pages))
	copy(topPages, pages)
	sort.SliceStable(topPages, func(i, j int) bool {
		return topPages[i].Clicks > topPages[j].Clicks
	})
	if len(topPages) > topListLimit {
		topPages = topPages[:topListLimit]
	}

	details := &entities.SearchDetails{
		TotalClicks:           totalClicks,
		TotalImpressions:      totalImpressions,
		AvgCTR:                avgCTR,
		AvgPosition:           avgPosition,
		PositionScore:         positionScore,
		CTRScore:              ctrScore,
		VolumeScore:           volumeScore,
		TopRankingQueries:     topRanking,
		OpportunityQueryCount: opportunityCount,
		OpportunityQueries:    opportunities,
		TopPerformingQueries:  topPerforming,
		TopPages:              topPages,
		Source:                source,
	}

	return score, details
}

// FoldQueryRows groups raw rows by query text, summing clicks and
// impressions and recomputing CTR from the running totals. Position is a
// running pairwise average: merging positions 5 and 15 gives 10 regardless of
// impression weight. The search dashboard folds rows exactly this way, and
// the two surfaces must agree, so this is kept as-is rather than replaced
// with the impression-weighted mean used for range summaries.
func FoldQueryRows(rows []entities.SearchQueryRow) []entities.SearchQueryRow {
	index := make(map[string]int, len(rows))
	var folded []entities.SearchQueryRow
	for _, r := range rows {
		i, seen := index[r.Query]
		if !seen {
			index[r.Query] = len(folded)
			folded = append(folded, r)
			continue
		}
		g := &folded[i]
		g.Clicks += r.Clicks
		g.Impressions += r.Impressions
		if g.Impressions > 0 {
			g.CTR = float64(g.Clicks) / float64(g.Impressions)
		} else {
			g.CTR = 0
		}
		g.Position = (g.Position + r.Position) / 2
	}
	return folded
}

// FoldPageRows groups raw rows by page URL with the same merge rules as
// FoldQueryRows.
func FoldPageRows(rows []entities.SearchPageRow) []entities.SearchPageRow {
	index := make(map[string]int, len(rows))
	var folded []entities.SearchPageRow
	for _, r := range rows {
		i, seen := index[r.Page]
		if !seen {
			index[r.Page] = len(folded)
			folded = append(folded, r)
			continue
		}
		g := &folded[i]
		g.Clicks += r.Clicks
		g.Impressions += r.Impressions
		if g.Impressions > 0 {
			g.CTR = float64(g.Clicks) / float64(g.Impressions)
		} else {
			g.CTR = 0
		}
		g.Position = (g.Position + r.Position) / 2
	}
	return folded
}
