package services

import (
	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// CompositeInputs carries the five sub-scores plus the opportunity-query
// metadata the SEO scorer produced.
type CompositeInputs struct {
	AIVisibility     float64
	SEOPresence      float64
	ShareOfAttention float64
	// RiskExposure is the blind-spot coverage score (higher = safer).
	RiskExposure float64
	GapAnalysis  float64

	OpportunityQueryCount int
	// OpportunityQueryListLen is the length of the capped top-10 list; the
	// opportunity formula rewards both the full count and the surfaced list.
	OpportunityQueryListLen int
}

// ComputeScores blends the sub-scores into the composite score set.
// competitivePosition and marketStructure are aliases of shareOfAttention,
// not independent computations.
func ComputeScores(in CompositeInputs) entities.ScoreSet {
	authority := round(0.8 * (0.3*in.AIVisibility + 0.3*in.SEOPresence + 0.4*in.ShareOfAttention))
	digitalControl := round(0.25*in.AIVisibility + 0.25*in.SEOPresence + 0.25*in.RiskExposure + 0.25*in.GapAnalysis)

	listed := in.OpportunityQueryListLen
	if in.OpportunityQueryCount < listed {
		listed = in.OpportunityQueryCount
	}
	opportunity := float64(10*in.OpportunityQueryCount + 15*listed)
	if opportunity > 100 {
		opportunity = 100
	}

	revenue := round(0.4*in.SEOPresence + 0.3*in.AIVisibility + 0.3*authority)

	return entities.ScoreSet{
		AIVisibility:        in.AIVisibility,
		SEOPresence:         in.SEOPresence,
		ShareOfAttention:    in.ShareOfAttention,
		AuthorityScore:      authority,
		DigitalControlScore: digitalControl,
		RiskExposure:        in.RiskExposure,
		OpportunityScore:    opportunity,
		CompetitivePosition: in.ShareOfAttention,
		RevenueReadiness:    revenue,
		MarketStructure:     in.ShareOfAttention,
	}
}
