package entities

import "time"

// ScoreSet holds the five sub-scores and the five composites. Field names are
// part of the outbound contract and must not change.
type ScoreSet struct {
	AIVisibility        float64 `json:"aiVisibility"`
	SEOPresence         float64 `json:"seoPresence"`
	ShareOfAttention    float64 `json:"shareOfAttention"`
	AuthorityScore      float64 `json:"authorityScore"`
	DigitalControlScore float64 `json:"digitalControlScore"`
	RiskExposure        float64 `json:"riskExposure"`
	OpportunityScore    float64 `json:"opportunityScore"`
	CompetitivePosition float64 `json:"competitivePosition"`
	RevenueReadiness    float64 `json:"revenueReadiness"`
	MarketStructure     float64 `json:"marketStructure"`
}

// ReportBlock is one named report in the response: a score, the detail
// payload backing it, and whether its source data was present. Details is nil
// whenever Available is false.
type ReportBlock struct {
	Available bool    `json:"available"`
	Score     float64 `json:"score"`
	Details   any     `json:"details"`
}

// ReportSet holds the ten report blocks of the intelligence response.
type ReportSet struct {
	ExecutiveBrief      ReportBlock `json:"executiveBrief"`
	AIVisibility        ReportBlock `json:"aiVisibility"`
	SEOAnalysis         ReportBlock `json:"seoAnalysis"`
	ShareOfAttention    ReportBlock `json:"shareOfAttention"`
	RiskMatrix          ReportBlock `json:"riskMatrix"`
	CompetitiveAudit    ReportBlock `json:"competitiveAudit"`
	GapAnalysis         ReportBlock `json:"gapAnalysis"`
	OpportunityEngine   ReportBlock `json:"opportunityEngine"`
	DigitalControl      ReportBlock `json:"digitalControl"`
	RevenueArchitecture ReportBlock `json:"revenueArchitecture"`
}

// Priority urgency labels, ordered critical < high < medium < low.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// Priority is one triggered decision-logic rule.
type Priority struct {
	Area    string `json:"area"`
	Urgency string `json:"urgency"`
}

// QuarterlyTheme is one entry of the four-quarter plan.
type QuarterlyTheme struct {
	Quarter string `json:"quarter"`
	Theme   string `json:"theme"`
}

// DecisionLogic is the rule-driven planning block of the response.
type DecisionLogic struct {
	Priorities      []Priority       `json:"priorities"`
	FocusAreas      []string         `json:"focusAreas"`
	QuarterlyThemes []QuarterlyTheme `json:"quarterlyThemes"`
}

// DataCompleteness reports which of the five sources were present, plus a
// 0-100 completeness score at 20 points per source.
type DataCompleteness struct {
	AIVisibility      bool `json:"aiVisibility"`
	SearchConsole     bool `json:"searchConsole"`
	MarketShare       bool `json:"marketShare"`
	BlindSpots        bool `json:"blindSpots"`
	GapAnalysis       bool `json:"gapAnalysis"`
	CompletenessScore int  `json:"completenessScore"`
}

// IntelligenceResponse is the full strategic-intelligence payload.
type IntelligenceResponse struct {
	Project          *Project         `json:"project"`
	Scores           ScoreSet         `json:"scores"`
	Reports          ReportSet        `json:"reports"`
	DecisionLogic    DecisionLogic    `json:"decisionLogic"`
	DataCompleteness DataCompleteness `json:"dataCompleteness"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}

// PlatformMention is the per-platform slice of the AI-visibility breakdown.
type PlatformMention struct {
	Platform  string  `json:"platform"`
	Total     int     `json:"total"`
	Mentioned int     `json:"mentioned"`
	Rate      float64 `json:"rate"`
}

// AIVisibilityDetails backs the aiVisibility report block.
type AIVisibilityDetails struct {
	MentionRate    float64           `json:"mentionRate"`
	TotalQueries   int               `json:"totalQueries"`
	MentionedCount int               `json:"mentionedCount"`
	Platforms      []PlatformMention `json:"platforms"`
}

// SearchDetails backs the seoAnalysis report block.
type SearchDetails struct {
	TotalClicks           int64            `json:"totalClicks"`
	TotalImpressions      int64            `json:"totalImpressions"`
	AvgCTR                float64          `json:"avgCTR"`
	AvgPosition           float64          `json:"avgPosition"`
	PositionScore         float64          `json:"positionScore"`
	CTRScore              float64          `json:"ctrScore"`
	VolumeScore           float64          `json:"volumeScore"`
	TopRankingQueries     int              `json:"topRankingQueries"`
	OpportunityQueryCount int              `json:"opportunityQueryCount"`
	OpportunityQueries    []SearchQueryRow `json:"opportunityQueries"`
	TopPerformingQueries  []SearchQueryRow `json:"topPerformingQueries"`
	TopPages              []SearchPageRow  `json:"topPages"`
	// Source is "summary" when a precomputed summary row was used, "derived"
	// when the totals were re-aggregated from raw rows.
	Source string `json:"source"`
}

// AttentionShareDetails backs the shareOfAttention and competitiveAudit
// report blocks. All percentages are rounded to one decimal from the source
// columns.
type AttentionShareDetails struct {
	MarketShareScore  float64            `json:"marketShareScore"`
	AIMentionSharePct float64            `json:"aiMentionSharePct"`
	OrganicSharePct   float64            `json:"organicSharePct"`
	EngineBreakdown   map[string]float64 `json:"engineBreakdown"`
	IntentBreakdown   map[string]float64 `json:"intentBreakdown"`
	GeneratedAt       time.Time          `json:"generatedAt"`
}

// BlindSpotDetails backs the riskMatrix report block.
type BlindSpotDetails struct {
	TotalBlindSpots   int             `json:"totalBlindSpots"`
	HighPriorityCount int             `json:"highPriorityCount"`
	AvgBlindSpotScore float64         `json:"avgBlindSpotScore"`
	AIBlindSpotPct    float64         `json:"aiBlindSpotPct"`
	RiskScore         float64         `json:"riskScore"`
	TopBlindSpots     []BlindSpotItem `json:"topBlindSpots"`
}

// GapDetails backs the gapAnalysis report block.
type GapDetails struct {
	TotalQueries  int            `json:"totalQueries"`
	BalancedCount int            `json:"balancedCount"`
	BandCounts    map[string]int `json:"bandCounts"`
	TopGaps       []GapQuery     `json:"topGaps"`
}

// OpportunityDetails backs the opportunityEngine report block.
type OpportunityDetails struct {
	OpportunityQueryCount int              `json:"opportunityQueryCount"`
	Queries               []SearchQueryRow `json:"queries"`
}

// DigitalControlDetails backs the digitalControl report block with the four
// equally-weighted component scores.
type DigitalControlDetails struct {
	AIVisibility float64 `json:"aiVisibility"`
	SEOPresence  float64 `json:"seoPresence"`
	RiskExposure float64 `json:"riskExposure"`
	GapAnalysis  float64 `json:"gapAnalysis"`
}

// RevenueReadinessDetails backs the revenueArchitecture report block.
type RevenueReadinessDetails struct {
	SEOPresence    float64 `json:"seoPresence"`
	AIVisibility   float64 `json:"aiVisibility"`
	AuthorityScore float64 `json:"authorityScore"`
}

// ScoreHighlight is one strength or weakness entry of the executive brief.
type ScoreHighlight struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ExecutiveBriefDetails backs the executiveBrief report block.
type ExecutiveBriefDetails struct {
	OverallHealth float64          `json:"overallHealth"`
	TopStrengths  []ScoreHighlight `json:"topStrengths"`
	TopWeaknesses []ScoreHighlight `json:"topWeaknesses"`
}
