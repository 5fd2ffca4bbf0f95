package entities

import "time"

// SearchQueryRow is one search-console metric row keyed by query text.
// Multiple rows may share a key across date chunks and are folded before
// scoring. CTR is a fraction (clicks/impressions), not a percentage.
type SearchQueryRow struct {
	Query       string  `json:"query" db:"query"`
	Clicks      int64   `json:"clicks" db:"clicks"`
	Impressions int64   `json:"impressions" db:"impressions"`
	CTR         float64 `json:"ctr" db:"ctr"`
	Position    float64 `json:"position" db:"position"`
}

// SearchPageRow is one search-console metric row keyed by page URL.
type SearchPageRow struct {
	Page        string  `json:"page" db:"page"`
	Clicks      int64   `json:"clicks" db:"clicks"`
	Impressions int64   `json:"impressions" db:"impressions"`
	CTR         float64 `json:"ctr" db:"ctr"`
	Position    float64 `json:"position" db:"position"`
}

// SearchSummary is a precomputed aggregate over a date range, written by the
// sync job with data_type = 'summary'. AvgCTR is in percent units, unlike the
// per-row fractional CTR.
type SearchSummary struct {
	Date             time.Time `json:"date" db:"date"`
	TotalClicks      int64     `json:"totalClicks" db:"total_clicks"`
	TotalImpressions int64     `json:"totalImpressions" db:"total_impressions"`
	AvgCTR           float64   `json:"avgCTR" db:"avg_ctr"`
	AvgPosition      float64   `json:"avgPosition" db:"avg_position"`
}
