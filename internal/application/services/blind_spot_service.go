package services

import (
	"sort"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// BlindSpotScorer inverts a raw risk magnitude into a coverage score: higher
// means fewer gaps. The risk magnitude weighs the gap count, the number of
// high-priority gaps and the average gap severity.
type BlindSpotScorer struct{}

// NewBlindSpotScorer creates a new blind spot scorer
func NewBlindSpotScorer() *BlindSpotScorer {
	return &BlindSpotScorer{}
}

// Score computes max(0, 100 - riskScore) where
// riskScore = min(100, round(total*3 + highPriority*10 + avgScore*0.5)).
// A missing report yields score 0 and nil details.
func (s *BlindSpotScorer) Score(report *entities.BlindSpotReport) (float64, *entities.BlindSpotDetails) {
	if report == nil {
		return 0, nil
	}

	highPriority := 0
	for _, item := range report.BlindSpots {
		if item.Priority == entities.PriorityHigh {
			highPriority++
		}
	}

	riskScore := round(float64(report.TotalBlindSpots)*3 +
		float64(highPriority)*10 +
		report.AvgBlindSpotScore*0.5)
	if riskScore > 100 {
		riskScore = 100
	}
	score := 100 - riskScore
	if score < 0 {
		score = 0
	}

	top := make([]entities.BlindSpotItem, len(report.BlindSpots))
	copy(top, report.BlindSpots)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].BlindSpotScore > top[j].BlindSpotScore
	})
	if len(top) > topListLimit {
		top = top[:topListLimit]
	}

	details := &entities.BlindSpotDetails{
		TotalBlindSpots:   report.TotalBlindSpots,
		HighPriorityCount: highPriority,
		AvgBlindSpotScore: report.AvgBlindSpotScore,
		AIBlindSpotPct:    report.AIBlindSpotPct,
		RiskScore:         riskScore,
		TopBlindSpots:     top,
	}

	return score, details
}
