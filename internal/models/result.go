package models

// SearchResults is the response for a global search. Results hold at most
// PageSize entries; TotalCount and TypeCounts reflect all matches before
// pagination.
type SearchResults struct {
	Results    []*SearchResult    `json:"results"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	// Query is the original query string, echoed verbatim for display.
	Query      string             `json:"query"`
	DurationMS int64              `json:"search_duration_ms"`
	TypeCounts map[EntityType]int `json:"type_counts"`

	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// Finalize computes the derived pagination fields from TotalCount, Page, and
// PageSize. It is idempotent.
func (r *SearchResults) Finalize() {
	if r.PageSize > 0 {
		r.TotalPages = (r.TotalCount + r.PageSize - 1) / r.PageSize
	} else {
		r.TotalPages = 0
	}
	r.HasNextPage = r.Page < r.TotalPages
	r.HasPreviousPage = r.Page > 1
}

// MeetingResult is a scored meeting hit with meeting-specific fields.
type MeetingResult struct {
	Meeting *Meeting `json:"meeting"`
	Score   float64  `json:"relevance_score"`
	Rank    int      `json:"rank"`
}

// PostResult is a scored post hit with post-specific fields.
type PostResult struct {
	Post  *Post   `json:"post"`
	Score float64 `json:"relevance_score"`
	Rank  int     `json:"rank"`
}

// CommentResult is a scored comment hit with comment-specific fields.
type CommentResult struct {
	Comment *Comment `json:"comment"`
	IsReply bool     `json:"is_reply"`
	Score   float64  `json:"relevance_score"`
	Rank    int      `json:"rank"`
}

// UserResult is a scored user hit.
type UserResult struct {
	User  *User   `json:"user"`
	Score float64 `json:"relevance_score"`
	Rank  int     `json:"rank"`
}

// SearchSuggestion is one autocomplete suggestion. Source is the entity type
// the text came from, or "query" for historical search terms. Count is the
// historical frequency when known.
type SearchSuggestion struct {
	Text   string `json:"text"`
	Source string `json:"type"`
	Count  int    `json:"count"`
}
