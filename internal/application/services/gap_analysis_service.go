package services

import (
	"math"
	"sort"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// GapAnalysisScorer scores the fraction of queries sitting in the "balanced"
// band of a stored gap report.
type GapAnalysisScorer struct{}

// NewGapAnalysisScorer creates a new gap analysis scorer
func NewGapAnalysisScorer() *GapAnalysisScorer {
	return &GapAnalysisScorer{}
}

// Score prefers the report's stored band counts and otherwise derives them by
// filtering queries on band. The denominator is floored at 1, a real
// divide-by-zero guard rather than null handling. A missing report yields
// score 0 and nil details.
func (s *GapAnalysisScorer) Score(report *entities.GapReport) (float64, *entities.GapDetails) {
	if report == nil {
		return 0, nil
	}

	counts := report.BandCounts
	if len(counts) == 0 {
		counts = make(map[string]int)
		for _, q := range report.Queries {
			counts[q.Band]++
		}
	}

	total := report.TotalQueries
	if total == 0 {
		total = len(report.Queries)
	}

	balanced := counts[entities.BandBalanced]
	denom := total
	if denom < 1 {
		denom = 1
	}
	score := round(100 * float64(balanced) / float64(denom))
	if score > 100 {
		score = 100
	}

	var topGaps []entities.GapQuery
	for _, q := range report.Queries {
		if q.Band == entities.BandAIRisk || q.Band == entities.BandModerateGap {
			topGaps = append(topGaps, q)
		}
	}
	sort.SliceStable(topGaps, func(i, j int) bool {
		return math.Abs(topGaps[i].GapScore) > math.Abs(topGaps[j].GapScore)
	})
	if len(topGaps) > topListLimit {
		topGaps = topGaps[:topListLimit]
	}

	details := &entities.GapDetails{
		TotalQueries:  total,
		BalancedCount: balanced,
		BandCounts:    counts,
		TopGaps:       topGaps,
	}

	return score, details
}
