package services

import (
	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// AttentionShareScorer passes a precomputed market-share report through with
// one-decimal rounding. No blending happens here; the external report job
// already did the work.
type AttentionShareScorer struct{}

// NewAttentionShareScorer creates a new attention share scorer
func NewAttentionShareScorer() *AttentionShareScorer {
	return &AttentionShareScorer{}
}

// Score returns round1(market_share_score) and the rounded detail fields.
// A missing report yields score 0 and nil details.
func (s *AttentionShareScorer) Score(report *entities.MarketShareReport) (float64, *entities.AttentionShareDetails) {
	if report == nil {
		return 0, nil
	}

	details := &entities.AttentionShareDetails{
		MarketShareScore:  round1(report.MarketShareScore),
		AIMentionSharePct: round1(report.AIMentionSharePct),
		OrganicSharePct:   round1(report.OrganicSharePct),
		EngineBreakdown:   roundBreakdown(report.EngineBreakdown),
		IntentBreakdown:   roundBreakdown(report.IntentBreakdown),
		GeneratedAt:       report.GeneratedAt,
	}

	return details.MarketShareScore, details
}

func roundBreakdown(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = round1(v)
	}
	return out
}
