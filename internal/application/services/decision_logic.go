package services

import (
	"sort"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// decisionRule is one threshold rule. Rules are evaluated independently in
// the fixed order below; evaluation order is the tie-breaker within an
// urgency level.
type decisionRule struct {
	area      string
	urgency   string
	triggered func(entities.ScoreSet) bool
}

var decisionRules = []decisionRule{
	{"AI Visibility Expansion", entities.UrgencyCritical, func(s entities.ScoreSet) bool { return s.AIVisibility < 40 }},
	{"SEO & Technical Optimization", entities.UrgencyCritical, func(s entities.ScoreSet) bool { return s.SEOPresence < 40 }},
	{"Authority & PR Strategy", entities.UrgencyHigh, func(s entities.ScoreSet) bool { return s.AuthorityScore < 40 }},
	{"Risk Mitigation", entities.UrgencyHigh, func(s entities.ScoreSet) bool { return s.RiskExposure < 50 }},
	{"Share of Attention Growth", entities.UrgencyCritical, func(s entities.ScoreSet) bool { return s.ShareOfAttention < 30 }},
	{"Opportunity Monetization", entities.UrgencyMedium, func(s entities.ScoreSet) bool { return s.OpportunityScore > 60 }},
	{"Digital Control Enhancement", entities.UrgencyHigh, func(s entities.ScoreSet) bool { return s.DigitalControlScore < 50 }},
}

var urgencyRank = map[string]int{
	entities.UrgencyCritical: 0,
	entities.UrgencyHigh:     1,
	entities.UrgencyMedium:   2,
	entities.UrgencyLow:      3,
}

// Q4 is always consolidation work regardless of what the year starts with.
const quarterFourTheme = "Performance optimization and market control consolidation"

// Fallback themes used when fewer than three priorities triggered.
var defaultQuarterThemes = [3]string{
	"Strengthen measurement foundations and capture quick wins",
	"Expand visibility across search and AI surfaces",
	"Consolidate authority and competitive positioning",
}

// BuildDecisionLogic evaluates every rule against the score set, orders the
// triggered priorities by urgency (stable within a level) and derives the
// focus areas and the four-quarter theme plan.
func BuildDecisionLogic(scores entities.ScoreSet) entities.DecisionLogic {
	priorities := []entities.Priority{}
	for _, rule := range decisionRules {
		if rule.triggered(scores) {
			priorities = append(priorities, entities.Priority{
				Area:    rule.area,
				Urgency: rule.urgency,
			})
		}
	}

	sort.SliceStable(priorities, func(i, j int) bool {
		return urgencyRank[priorities[i].Urgency] < urgencyRank[priorities[j].Urgency]
	})

	focusAreas := make([]string, len(priorities))
	for i, p := range priorities {
		focusAreas[i] = p.Area
	}

	themes := make([]entities.QuarterlyTheme, 0, 4)
	quarters := [3]string{"Q1", "Q2", "Q3"}
	for i, quarter := range quarters {
		theme := defaultQuarterThemes[i]
		if i < len(priorities) {
			theme = priorities[i].Area
		}
		themes = append(themes, entities.QuarterlyTheme{Quarter: quarter, Theme: theme})
	}
	themes = append(themes, entities.QuarterlyTheme{Quarter: "Q4", Theme: quarterFourTheme})

	return entities.DecisionLogic{
		Priorities:      priorities,
		FocusAreas:      focusAreas,
		QuarterlyThemes: themes,
	}
}
