// Package cli provides CLI utilities for Scout.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gatherly/scout/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, results *models.SearchResults, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		writeSearchResultsText(w, results)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, results *models.SearchResults) {
	fmt.Fprintf(w, "\nFound %d results in %dms (page %d of %d)\n",
		results.TotalCount, results.DurationMS, results.Page, results.TotalPages)
	if len(results.TypeCounts) > 0 {
		fmt.Fprintf(w, "%s\n", formatTypeCounts(results.TypeCounts))
	}
	fmt.Fprintln(w)
	for i, result := range results.Results {
		rank := (results.Page-1)*results.PageSize + i + 1
		writeOneResult(w, result, rank)
	}
}

func writeOneResult(w io.Writer, result *models.SearchResult, rank int) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "[%s] Rank: %d | Score: %.1f\n", result.Type, rank, result.Score)
	fmt.Fprintf(w, "ID: %s\n", result.ID)
	if result.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", result.Title)
	}
	if result.AuthorName != "" {
		fmt.Fprintf(w, "Author: %s\n", result.AuthorName)
	}
	fmt.Fprintf(w, "Created: %s\n", result.CreatedAt.Format("2006-01-02 15:04"))
	if result.Content != "" {
		fmt.Fprintf(w, "\n%s\n", Truncate(result.Content, 200))
	}
	fmt.Fprintln(w)
}

// formatTypeCounts renders per-type counts as "meeting: 3, post: 1" in a
// stable order.
func formatTypeCounts(counts map[models.EntityType]int) string {
	parts := make([]string, 0, len(counts))
	for _, typ := range models.AllEntityTypes() {
		if n, ok := counts[typ]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", typ, n))
		}
	}
	return strings.Join(parts, ", ")
}

// WriteSuggestions writes search suggestions to w in the given format.
func WriteSuggestions(w io.Writer, suggestions []*models.SearchSuggestion, format SearchOutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No suggestions")
		return nil
	}
	for _, s := range suggestions {
		if s.Count > 0 {
			fmt.Fprintf(w, "%s (%s, %d searches)\n", s.Text, s.Source, s.Count)
		} else {
			fmt.Fprintf(w, "%s (%s)\n", s.Text, s.Source)
		}
	}
	return nil
}

// WritePopularTerms writes the most-searched terms to w in the given format.
// Terms arrive ranked by frequency descending.
func WritePopularTerms(w io.Writer, terms []string, format SearchOutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(terms)
	}
	if len(terms) == 0 {
		fmt.Fprintln(w, "No recorded searches")
		return nil
	}
	for i, term := range terms {
		fmt.Fprintf(w, "%2d. %s\n", i+1, term)
	}
	return nil
}

// WriteStatus writes a server status map to w, keys sorted for stable output.
func WriteStatus(w io.Writer, status map[string]any, format SearchOutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}
	keys := make([]string, 0, len(status))
	for k := range status {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %v\n", k, status[k])
	}
	return nil
}

// PrintSearchResults prints search results to stdout in text format (backward compatible).
func PrintSearchResults(results *models.SearchResults) {
	_ = WriteSearchResults(os.Stdout, results, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
