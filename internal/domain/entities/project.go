package entities

import "time"

// Project represents one tracked client project. Every scoring request is
// scoped to a project; its domain scopes the search-console and gap sources.
type Project struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Domain    string    `json:"domain" db:"domain"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
