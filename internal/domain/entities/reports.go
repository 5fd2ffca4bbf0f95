package entities

import "time"

// Blind-spot priority labels assigned by the upstream coverage job.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Gap bands assigned by the upstream gap-analysis job, consumed as-is.
const (
	BandAIRisk         = "ai_risk"
	BandModerateGap    = "moderate_gap"
	BandBalanced       = "balanced"
	BandSEOOpportunity = "seo_opportunity"
	BandSEOFailure     = "seo_failure"
)

// MarketShareReport is one snapshot of competitive attention share for a
// (user, project) pair. The most recent snapshot by GeneratedAt wins.
type MarketShareReport struct {
	MarketShareScore  float64            `json:"market_share_score" db:"market_share_score"`
	AIMentionSharePct float64            `json:"ai_mention_share_pct" db:"ai_mention_share_pct"`
	OrganicSharePct   float64            `json:"organic_share_pct" db:"organic_share_pct"`
	EngineBreakdown   map[string]float64 `json:"engine_breakdown" db:"-"`
	IntentBreakdown   map[string]float64 `json:"intent_breakdown" db:"-"`
	GeneratedAt       time.Time          `json:"generated_at" db:"generated_at"`
}

// BlindSpotItem is one query the brand is absent from.
type BlindSpotItem struct {
	Query          string  `json:"query"`
	Priority       string  `json:"priority"`
	BlindSpotScore float64 `json:"blindSpotScore"`
	DemandScore    float64 `json:"demandScore"`
	AbsenceScore   float64 `json:"absenceScore"`
	Volume         int64   `json:"volume"`
}

// BlindSpotReport is the single coverage-gap snapshot for a (user, domain)
// pair.
type BlindSpotReport struct {
	TotalBlindSpots   int             `json:"total_blind_spots" db:"total_blind_spots"`
	AvgBlindSpotScore float64         `json:"avg_blind_spot_score" db:"avg_blind_spot_score"`
	AIBlindSpotPct    float64         `json:"ai_blind_spot_pct" db:"ai_blind_spot_pct"`
	BlindSpots        []BlindSpotItem `json:"blind_spots" db:"-"`
}

// GapQuery is one query compared across search and AI visibility.
type GapQuery struct {
	Query       string  `json:"query"`
	Band        string  `json:"band"`
	GapScore    float64 `json:"gapScore"`
	GoogleScore float64 `json:"googleScore"`
	AIScore     float64 `json:"aiScore"`
}

// GapReport is the single search-vs-AI visibility snapshot for a
// (user, domain) pair. BandCounts is the precomputed per-band tally; when the
// job did not write it the scorer derives counts from Queries.
type GapReport struct {
	Queries      []GapQuery     `json:"queries" db:"-"`
	BandCounts   map[string]int `json:"band_counts" db:"-"`
	TotalQueries int            `json:"total_queries" db:"total_queries"`
}
