package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gatherly/scout/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func appendQuery(t *testing.T, store *SQLiteStore, query string, searchedAt time.Time) {
	t.Helper()
	err := store.Append(context.Background(), &models.QueryRecord{
		Query:       query,
		SearchType:  "global",
		ResultCount: 1,
		DurationMS:  5,
		SearchedAt:  searchedAt,
	})
	if err != nil {
		t.Fatalf("Append(%q): %v", query, err)
	}
}

func TestAppend_fillsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)
	record := &models.QueryRecord{Query: "standup", SearchType: "global"}
	if err := store.Append(context.Background(), record); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if record.ID == "" {
		t.Error("Append should fill in a record ID")
	}
	if record.SearchedAt.IsZero() {
		t.Error("Append should fill in SearchedAt")
	}

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestPopularTerms_frequencyOrdering(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		appendQuery(t, store, "tech", base.Add(time.Duration(i)*time.Minute))
	}
	appendQuery(t, store, "retro", base)
	appendQuery(t, store, "retro", base.Add(time.Hour))
	appendQuery(t, store, "roadmap", base)

	terms, err := store.PopularTerms(context.Background(), 10)
	if err != nil {
		t.Fatalf("PopularTerms: %v", err)
	}
	want := []string{"tech", "retro", "roadmap"}
	if len(terms) != len(want) {
		t.Fatalf("got %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("terms[%d] = %q, want %q", i, terms[i], want[i])
		}
	}

	top, err := store.PopularTerms(context.Background(), 1)
	if err != nil {
		t.Fatalf("PopularTerms(1): %v", err)
	}
	if len(top) != 1 || top[0] != "tech" {
		t.Errorf("PopularTerms(1) = %v, want [tech]", top)
	}
}

func TestPopularTerms_normalizesCaseAndWhitespace(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	appendQuery(t, store, "Standup", base)
	appendQuery(t, store, "  standup  ", base.Add(time.Minute))
	appendQuery(t, store, "STANDUP", base.Add(2*time.Minute))

	terms, err := store.PopularTerms(context.Background(), 10)
	if err != nil {
		t.Fatalf("PopularTerms: %v", err)
	}
	if len(terms) != 1 || terms[0] != "standup" {
		t.Errorf("variants should collapse to one normalized term: %v", terms)
	}
}

func TestPopularTerms_recencyBreaksTies(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	appendQuery(t, store, "older", base)
	appendQuery(t, store, "newer", base.Add(time.Hour))

	terms, err := store.PopularTerms(context.Background(), 2)
	if err != nil {
		t.Fatalf("PopularTerms: %v", err)
	}
	if len(terms) != 2 || terms[0] != "newer" || terms[1] != "older" {
		t.Errorf("tie should favor the most recent term: %v", terms)
	}
}

func TestPopularTerms_zeroAndNegativeCount(t *testing.T) {
	store := newTestStore(t)
	appendQuery(t, store, "standup", time.Now())

	for _, n := range []int{0, -3} {
		terms, err := store.PopularTerms(context.Background(), n)
		if err != nil {
			t.Errorf("PopularTerms(%d) error: %v", n, err)
		}
		if len(terms) != 0 {
			t.Errorf("PopularTerms(%d) = %v, want empty", n, terms)
		}
	}
}

func TestTermFrequencies(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	appendQuery(t, store, "tech", base)
	appendQuery(t, store, "tech", base.Add(time.Minute))
	appendQuery(t, store, "retro", base)

	counts, err := store.TermFrequencies(context.Background(), 10)
	if err != nil {
		t.Fatalf("TermFrequencies: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("got %+v, want 2 entries", counts)
	}
	if counts[0].Term != "tech" || counts[0].Count != 2 {
		t.Errorf("counts[0] = %+v, want tech/2", counts[0])
	}
	if counts[1].Term != "retro" || counts[1].Count != 1 {
		t.Errorf("counts[1] = %+v, want retro/1", counts[1])
	}
}
