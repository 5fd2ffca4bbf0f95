package entities

import "time"

// Session status values written by the brand-monitoring job.
const (
	SessionStatusPending   = "pending"
	SessionStatusRunning   = "running"
	SessionStatusCompleted = "completed"
	SessionStatusFailed    = "failed"
)

// AnalysisSession represents one completed run of the external
// brand-monitoring job. TotalQueries is the planned query count; the
// results summary carries the count the run actually executed.
type AnalysisSession struct {
	ID           string    `json:"id" db:"id"`
	ProjectID    string    `json:"project_id" db:"project_id"`
	Status       string    `json:"status" db:"status"`
	TotalQueries int       `json:"total_queries" db:"total_queries"`
	// ResultsTotalQueries is 0 when the job did not write a results summary.
	ResultsTotalQueries int       `json:"results_total_queries" db:"results_total_queries"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// AIResponse represents one AI-platform answer to one tracked query within a
// monitoring session.
type AIResponse struct {
	ID             string `json:"id" db:"id"`
	SessionID      string `json:"session_id" db:"session_id"`
	Platform       string `json:"platform" db:"platform"`
	BrandMentioned bool   `json:"brand_mentioned" db:"brand_mentioned"`
}
