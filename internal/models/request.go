package models

import (
	"fmt"
	"strings"
)

// Request size limits enforced at the API boundary. The search engine itself
// accepts any non-empty query; these bounds protect the HTTP surface.
const (
	MinQueryLength           = 2
	MaxQueryLength           = 200
	MinSuggestionQueryLength = 1
	MaxSuggestionQueryLength = 100
	DefaultPageSize          = 20
	MaxPageSize              = 100
)

// SearchRequest is a validated search request as accepted at the API boundary.
type SearchRequest struct {
	Query    string        `json:"query"`
	Filters  SearchFilters `json:"filters,omitempty"`
	Page     int           `json:"page,omitempty"`
	PageSize int           `json:"page_size,omitempty"`
	UserID   string        `json:"user_id,omitempty"`
}

// Validate checks boundary constraints and fills in paging defaults.
// The engine assumes requests have passed through here.
func (r *SearchRequest) Validate() error {
	trimmed := strings.TrimSpace(r.Query)
	if len(trimmed) < MinQueryLength {
		return fmt.Errorf("query must be at least %d characters", MinQueryLength)
	}
	if len(trimmed) > MaxQueryLength {
		return fmt.Errorf("query must be at most %d characters", MaxQueryLength)
	}
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Page < 1 {
		return fmt.Errorf("page must be >= 1")
	}
	if r.PageSize == 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize < 1 {
		return fmt.Errorf("page_size must be >= 1")
	}
	if r.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be <= %d", MaxPageSize)
	}
	switch r.Filters.SortByOrDefault() {
	case SortByRelevance, SortByDate, SortByTitle:
	default:
		return fmt.Errorf("unknown sort field: %q", r.Filters.SortBy)
	}
	switch r.Filters.SortDirOrDefault() {
	case SortAsc, SortDesc:
	default:
		return fmt.Errorf("unknown sort direction: %q", r.Filters.SortDir)
	}
	if r.Filters.From != nil && r.Filters.To != nil && r.Filters.From.After(*r.Filters.To) {
		return fmt.Errorf("from date must not be after to date")
	}
	return nil
}
