package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gatherly/scout/internal/models"
)

func sampleResults() *models.SearchResults {
	results := &models.SearchResults{
		Results: []*models.SearchResult{
			{
				SearchCandidate: models.SearchCandidate{
					ID:         "m-1",
					Title:      "Team Standup",
					Content:    "Daily sync for the platform team",
					Type:       models.EntityMeeting,
					AuthorName: "Dana",
					CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				},
				Score: 100,
			},
			{
				SearchCandidate: models.SearchCandidate{
					ID:        "p-1",
					Title:     "Standup notes",
					Content:   "Notes from the standup",
					Type:      models.EntityPost,
					CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
				},
				Score: 75,
			},
		},
		TotalCount: 2,
		Page:       1,
		PageSize:   20,
		Query:      "standup",
		DurationMS: 12,
		TypeCounts: map[models.EntityType]int{
			models.EntityMeeting: 1,
			models.EntityPost:    1,
		},
	}
	results.Finalize()
	return results
}

func TestWriteSearchResults_JSON(t *testing.T) {
	results := sampleResults()
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, results, OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResults
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != "standup" || decoded.TotalCount != 2 {
		t.Errorf("decoded query=%q total=%d, want standup/2", decoded.Query, decoded.TotalCount)
	}
	if len(decoded.Results) != 2 || decoded.Results[0].ID != "m-1" {
		t.Errorf("decoded results: want two with first id m-1, got %+v", decoded.Results)
	}
}

func TestWriteSearchResults_JSON_empty(t *testing.T) {
	results := &models.SearchResults{Query: "q", Page: 1, PageSize: 20}
	results.Finalize()
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, results, OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResults
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("empty results JSON decode: %v", err)
	}
	if decoded.TotalCount != 0 || decoded.HasNextPage {
		t.Errorf("expected empty page, got total=%d has_next=%v", decoded.TotalCount, decoded.HasNextPage)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResults(), OutputText); err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Found 2 results", "12ms", "meeting: 1, post: 1", "Rank: 1", "ID: m-1", "Team Standup", "Author: Dana", "Daily sync"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_text_ranksFollowPage(t *testing.T) {
	results := sampleResults()
	results.Page = 2
	results.PageSize = 5
	results.TotalCount = 7
	results.Finalize()
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, results, OutputText); err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	if !strings.Contains(buf.String(), "Rank: 6") {
		t.Errorf("expected rank 6 for first result on page 2, got:\n%s", buf.String())
	}
}

func TestWriteSearchResults_unknownFormatTreatedAsText(t *testing.T) {
	var buf bytes.Buffer
	results := &models.SearchResults{Query: "x", Page: 1, PageSize: 20}
	results.Finalize()
	if err := WriteSearchResults(&buf, results, SearchOutputFormat("unknown")); err != nil {
		t.Fatalf("WriteSearchResults(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "Found") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestWriteSuggestions(t *testing.T) {
	suggestions := []*models.SearchSuggestion{
		{Text: "Team Standup", Source: "title"},
		{Text: "team retro", Source: "query", Count: 4},
	}
	var buf bytes.Buffer
	if err := WriteSuggestions(&buf, suggestions, OutputText); err != nil {
		t.Fatalf("WriteSuggestions(text): %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Team Standup (title)") {
		t.Errorf("expected title suggestion line, got:\n%s", out)
	}
	if !strings.Contains(out, "team retro (query, 4 searches)") {
		t.Errorf("expected query suggestion line with count, got:\n%s", out)
	}

	buf.Reset()
	if err := WriteSuggestions(&buf, nil, OutputText); err != nil {
		t.Fatalf("WriteSuggestions(nil): %v", err)
	}
	if !strings.Contains(buf.String(), "No suggestions") {
		t.Errorf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	if err := WriteSuggestions(&buf, suggestions, OutputJSON); err != nil {
		t.Fatalf("WriteSuggestions(json): %v", err)
	}
	var decoded []*models.SearchSuggestion
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("suggestions JSON decode: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Count != 4 {
		t.Errorf("decoded suggestions mismatch: %+v", decoded)
	}
}

func TestWritePopularTerms(t *testing.T) {
	terms := []string{"standup", "retro"}
	var buf bytes.Buffer
	if err := WritePopularTerms(&buf, terms, OutputText); err != nil {
		t.Fatalf("WritePopularTerms(text): %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1. standup") || !strings.Contains(out, "2. retro") {
		t.Errorf("unexpected popular terms output:\n%s", out)
	}

	buf.Reset()
	if err := WritePopularTerms(&buf, nil, OutputText); err != nil {
		t.Fatalf("WritePopularTerms(nil): %v", err)
	}
	if !strings.Contains(buf.String(), "No recorded searches") {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}

func TestWriteStatus(t *testing.T) {
	status := map[string]any{
		"status":   "ok",
		"meetings": float64(3),
	}
	var buf bytes.Buffer
	if err := WriteStatus(&buf, status, OutputText); err != nil {
		t.Fatalf("WriteStatus(text): %v", err)
	}
	out := buf.String()
	meetingsIdx := strings.Index(out, "meetings: 3")
	statusIdx := strings.Index(out, "status: ok")
	if meetingsIdx < 0 || statusIdx < 0 || meetingsIdx > statusIdx {
		t.Errorf("expected sorted key output, got:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"empty", "", 5, ""},
		{"short", "hi", 5, "hi"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"maxLen zero", "ab", 0, "ab"},
		{"maxLen negative", "ab", -1, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		maxWords int
		want     string
	}{
		{"empty", "", 3, ""},
		{"few words", "one two", 3, "one two"},
		{"exact", "one two three", 3, "one two three"},
		{"more", "one two three four", 3, "one two three..."},
		{"single long", "word", 1, "word"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWords(tt.s, tt.maxWords)
			if got != tt.want {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.s, tt.maxWords, got, tt.want)
			}
		})
	}
}

func TestPrintSearchResults(t *testing.T) {
	results := &models.SearchResults{Query: "print test", Page: 1, PageSize: 20}
	results.Finalize()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
		_ = w.Close()
	}()
	PrintSearchResults(results)
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	if !strings.Contains(buf.String(), "Found 0 results") {
		t.Errorf("PrintSearchResults should write to stdout; got %q", buf.String())
	}
}
