package services

import (
	"sort"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

const (
	strengthThreshold = 60
	weaknessThreshold = 40
	highlightLimit    = 3
)

// scoreEntry maps one score key to its display label and getter. The brief
// iterates this static registry instead of reflecting over struct fields, so
// the key/label mapping is exhaustively enumerable and type-checked.
type scoreEntry struct {
	key   string
	label string
	value func(entities.ScoreSet) float64
}

var scoreRegistry = []scoreEntry{
	{"aiVisibility", "AI Visibility", func(s entities.ScoreSet) float64 { return s.AIVisibility }},
	{"seoPresence", "SEO Presence", func(s entities.ScoreSet) float64 { return s.SEOPresence }},
	{"shareOfAttention", "Share of Attention", func(s entities.ScoreSet) float64 { return s.ShareOfAttention }},
	{"authorityScore", "Authority Score", func(s entities.ScoreSet) float64 { return s.AuthorityScore }},
	{"digitalControlScore", "Digital Control Score", func(s entities.ScoreSet) float64 { return s.DigitalControlScore }},
	{"riskExposure", "Risk Exposure", func(s entities.ScoreSet) float64 { return s.RiskExposure }},
	{"opportunityScore", "Opportunity Score", func(s entities.ScoreSet) float64 { return s.OpportunityScore }},
	{"competitivePosition", "Competitive Position", func(s entities.ScoreSet) float64 { return s.CompetitivePosition }},
	{"revenueReadiness", "Revenue Readiness", func(s entities.ScoreSet) float64 { return s.RevenueReadiness }},
	{"marketStructure", "Market Structure", func(s entities.ScoreSet) float64 { return s.MarketStructure }},
}

// BuildExecutiveBrief computes overall health as the rounded mean of the ten
// named scores, plus the top strengths (>= 60, best first) and weaknesses
// (< 40, worst first), three entries each at most.
func BuildExecutiveBrief(scores entities.ScoreSet) entities.ExecutiveBriefDetails {
	all := make([]entities.ScoreHighlight, 0, len(scoreRegistry))
	sum := 0.0
	for _, entry := range scoreRegistry {
		v := entry.value(scores)
		sum += v
		all = append(all, entities.ScoreHighlight{Key: entry.key, Label: entry.label, Score: v})
	}

	var strengths, weaknesses []entities.ScoreHighlight
	for _, h := range all {
		switch {
		case h.Score >= strengthThreshold:
			strengths = append(strengths, h)
		case h.Score < weaknessThreshold:
			weaknesses = append(weaknesses, h)
		}
	}

	sort.SliceStable(strengths, func(i, j int) bool { return strengths[i].Score > strengths[j].Score })
	sort.SliceStable(weaknesses, func(i, j int) bool { return weaknesses[i].Score < weaknesses[j].Score })

	if len(strengths) > highlightLimit {
		strengths = strengths[:highlightLimit]
	}
	if len(weaknesses) > highlightLimit {
		weaknesses = weaknesses[:highlightLimit]
	}

	return entities.ExecutiveBriefDetails{
		OverallHealth: round(sum / float64(len(scoreRegistry))),
		TopStrengths:  strengths,
		TopWeaknesses: weaknesses,
	}
}
