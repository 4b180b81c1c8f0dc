package models

import "time"

// SortField is the field results are ordered by.
type SortField string

const (
	// SortByRelevance orders by relevance score (ties break by creation date, newest first).
	SortByRelevance SortField = "relevance"
	// SortByDate orders by creation date.
	SortByDate SortField = "date"
	// SortByTitle orders by title, case-insensitively.
	SortByTitle SortField = "title"
)

// SortDirection is the ordering direction.
type SortDirection string

const (
	// SortAsc orders ascending.
	SortAsc SortDirection = "asc"
	// SortDesc orders descending.
	SortDesc SortDirection = "desc"
)

// SearchCandidate is the uniform intermediate record one entity match is
// normalized into before scoring. Candidates are request-scoped: they are
// created and consumed within a single search invocation.
type SearchCandidate struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Type       EntityType             `json:"type"`
	AuthorName string                 `json:"author_name"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// SearchResult is a scored candidate. Score is the merge/sort ordering key
// when sorting by relevance.
type SearchResult struct {
	SearchCandidate
	Score float64 `json:"relevance_score"`
}

// SearchFilters narrows a search. The zero value means: all types, no date
// range, no author restriction, active entities only, sorted by relevance
// descending.
type SearchFilters struct {
	// Types restricts the search to specific entity types. Empty means all.
	Types []EntityType `json:"types,omitempty"`

	// From filters to entities created on or after this time.
	From *time.Time `json:"from,omitempty"`

	// To filters to entities created on or before this time.
	To *time.Time `json:"to,omitempty"`

	// Authors restricts matches to these author names. Empty means any.
	Authors []string `json:"authors,omitempty"`

	// ActiveOnly excludes soft-deleted/inactive entities. Defaults to true when unset.
	ActiveOnly *bool `json:"active_only,omitempty"`

	// SortBy is the ordering field. Defaults to relevance when empty.
	SortBy SortField `json:"sort_by,omitempty"`

	// SortDir is the ordering direction. Defaults to descending when empty.
	SortDir SortDirection `json:"sort_dir,omitempty"`
}

// ActiveOnlyOrDefault returns the active-only flag; defaults to true when unset.
func (f *SearchFilters) ActiveOnlyOrDefault() bool {
	if f.ActiveOnly != nil {
		return *f.ActiveOnly
	}
	return true
}

// SortByOrDefault returns the sort field; defaults to relevance when empty.
func (f *SearchFilters) SortByOrDefault() SortField {
	if f.SortBy != "" {
		return f.SortBy
	}
	return SortByRelevance
}

// SortDirOrDefault returns the sort direction; defaults to descending when empty.
func (f *SearchFilters) SortDirOrDefault() SortDirection {
	if f.SortDir != "" {
		return f.SortDir
	}
	return SortDesc
}

// ActiveTypes returns the types to search: Types when non-empty, else all.
// Duplicate entries are dropped, keeping first-occurrence order, so a type
// is never fetched or merged twice.
func (f *SearchFilters) ActiveTypes() []EntityType {
	if len(f.Types) == 0 {
		return AllEntityTypes()
	}
	seen := make(map[EntityType]struct{}, len(f.Types))
	types := make([]EntityType, 0, len(f.Types))
	for _, t := range f.Types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}
