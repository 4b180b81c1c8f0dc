package models

import "time"

// QueryRecord is one persisted search-analytics row. Records are append-only:
// the engine writes them once per executed search and never mutates them.
type QueryRecord struct {
	ID          string    `json:"id" db:"id"`
	Query       string    `json:"query" db:"query"`
	SearchType  string    `json:"search_type" db:"search_type"`
	ResultCount int       `json:"result_count" db:"result_count"`
	DurationMS  int64     `json:"duration_ms" db:"duration_ms"`
	SearchedAt  time.Time `json:"searched_at" db:"searched_at"`
	UserID      string    `json:"user_id,omitempty" db:"user_id"`
}

// TermCount is a historical query term with its recorded frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}
