package services

import (
	"sort"

	"github.com/kestrelhq/insight-backend/internal/domain/entities"
)

// AIVisibilityScorer turns one monitoring session's response rows into a
// 0-100 mention-rate score with a per-platform breakdown.
type AIVisibilityScorer struct{}

// NewAIVisibilityScorer creates a new AI visibility scorer
func NewAIVisibilityScorer() *AIVisibilityScorer {
	return &AIVisibilityScorer{}
}

// Score computes the mention-rate score. The denominator prefers the session
// results summary, then the planned query count, then the number of fetched
// responses. An empty response set yields score 0 and nil details.
func (s *AIVisibilityScorer) Score(session *entities.AnalysisSession, responses []entities.AIResponse) (float64, *entities.AIVisibilityDetails) {
	if len(responses) == 0 {
		return 0, nil
	}

	totalQueries := len(responses)
	if session != nil {
		switch {
		case session.ResultsTotalQueries > 0:
			totalQueries = session.ResultsTotalQueries
		case session.TotalQueries > 0:
			totalQueries = session.TotalQueries
		}
	}

	mentioned := 0
	type platformTally struct {
		total     int
		mentioned int
	}
	tallies := make(map[string]*platformTally)
	for _, r := range responses {
		t := tallies[r.Platform]
		if t == nil {
			t = &platformTally{}
			tallies[r.Platform] = t
		}
		t.total++
		if r.BrandMentioned {
			mentioned++
			t.mentioned++
		}
	}

	// A multi-platform session carries one response row per platform per
	// query, so mentioned can exceed totalQueries; the rate stays in [0, 100].
	mentionRate := 0.0
	if totalQueries > 0 {
		mentionRate = clamp(100*float64(mentioned)/float64(totalQueries), 0, 100)
	}

	platforms := make([]entities.PlatformMention, 0, len(tallies))
	for name, t := range tallies {
		platforms = append(platforms, entities.PlatformMention{
			Platform:  name,
			Total:     t.total,
			Mentioned: t.mentioned,
			Rate:      round(100 * float64(t.mentioned) / float64(t.total)),
		})
	}
	sort.Slice(platforms, func(i, j int) bool {
		return platforms[i].Platform < platforms[j].Platform
	})

	details := &entities.AIVisibilityDetails{
		MentionRate:    mentionRate,
		TotalQueries:   totalQueries,
		MentionedCount: mentioned,
		Platforms:      platforms,
	}

	return round(mentionRate), details
}
