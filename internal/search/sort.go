package search

import (
	"sort"
	"strings"

	"github.com/gatherly/scout/internal/models"
)

// sortResults orders results in place. The sort is stable: equal keys keep
// the per-type fetch order. Relevance ties break by creation date, newest
// first, regardless of direction.
func sortResults(results []*models.SearchResult, by models.SortField, dir models.SortDirection) {
	asc := dir == models.SortAsc
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch by {
		case models.SortByDate:
			if a.CreatedAt.Equal(b.CreatedAt) {
				return false
			}
			if asc {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		case models.SortByTitle:
			at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if at == bt {
				return false
			}
			if asc {
				return at < bt
			}
			return at > bt
		default:
			if a.Score != b.Score {
				if asc {
					return a.Score < b.Score
				}
				return a.Score > b.Score
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

// paginate returns the requested page window. Pages beyond the result set
// yield an empty slice; counts computed before pagination stay accurate.
func paginate(results []*models.SearchResult, page, pageSize int) []*models.SearchResult {
	start := (page - 1) * pageSize
	if start < 0 || start >= len(results) {
		return []*models.SearchResult{}
	}
	end := start + pageSize
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}
