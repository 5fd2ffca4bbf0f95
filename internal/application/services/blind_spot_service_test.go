package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/insight-backend/internal/application/services"
	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

func TestBlindSpotScorer_NoReport(t *testing.T) {
	scorer := services.NewBlindSpotScorer()

	score, details := scorer.Score(nil)

	assert.Equal(t, 0.0, score)
	assert.Nil(t, details)
}

func TestBlindSpotScorer_InvertsRisk(t *testing.T) {
	scorer := services.NewBlindSpotScorer()

	report := &entities.BlindSpotReport{
		TotalBlindSpots:   10,
		AvgBlindSpotScore: 40,
		BlindSpots: []entities.BlindSpotItem{
			{Query: "q1", Priority: entities.PriorityHigh, BlindSpotScore: 80},
			{Query: "q2", Priority: entities.PriorityHigh, BlindSpotScore: 70},
			{Query: "q3", Priority: entities.PriorityLow, BlindSpotScore: 90},
		},
	}

	score, details := scorer.Score(report)

	require.NotNil(t, details)
	// riskScore = min(100, round(10*3 + 2*10 + 40*0.5)) = 70
	assert.Equal(t, 70.0, details.RiskScore)
	assert.Equal(t, 30.0, score)
	assert.Equal(t, 2, details.HighPriorityCount)
	// Sorted by blindSpotScore descending
	assert.Equal(t, "q3", details.TopBlindSpots[0].Query)
}

func TestBlindSpotScorer_RiskClampedAt100(t *testing.T) {
	scorer := services.NewBlindSpotScorer()

	report := &entities.BlindSpotReport{
		TotalBlindSpots:   500,
		AvgBlindSpotScore: 95,
	}

	score, details := scorer.Score(report)

	require.NotNil(t, details)
	assert.Equal(t, 100.0, details.RiskScore)
	assert.Equal(t, 0.0, score)
}

func TestBlindSpotScorer_TopBlindSpotsCapped(t *testing.T) {
	scorer := services.NewBlindSpotScorer()

	report := &entities.BlindSpotReport{TotalBlindSpots: 12}
	for i := 0; i < 12; i++ {
		report.BlindSpots = append(report.BlindSpots, entities.BlindSpotItem{
			Query:          string(rune('a' + i)),
			Priority:       entities.PriorityMedium,
			BlindSpotScore: float64(i),
		})
	}

	_, details := scorer.Score(report)

	require.NotNil(t, details)
	require.Len(t, details.TopBlindSpots, 10)
	assert.Equal(t, 11.0, details.TopBlindSpots[0].BlindSpotScore)
}
