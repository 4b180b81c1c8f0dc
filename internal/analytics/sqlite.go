package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gatherly/scout/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the analytics database at dbPath and
// initializes the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS search_queries (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		search_type TEXT NOT NULL,
		result_count INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		searched_at TIMESTAMP NOT NULL,
		user_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_search_queries_searched_at ON search_queries(searched_at);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append persists one query record.
func (s *SQLiteStore) Append(ctx context.Context, record *models.QueryRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SearchedAt.IsZero() {
		record.SearchedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_queries (id, query, search_type, result_count, duration_ms, searched_at, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Query, record.SearchType, record.ResultCount,
		record.DurationMS, record.SearchedAt, record.UserID,
	)
	return err
}

// PopularTerms returns the top n distinct terms by frequency.
func (s *SQLiteStore) PopularTerms(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT lower(trim(query)) AS term
		 FROM search_queries
		 WHERE trim(query) != ''
		 GROUP BY term
		 ORDER BY COUNT(*) DESC, MAX(searched_at) DESC
		 LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying popular terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}

// TermFrequencies returns historical terms with frequencies, most frequent first.
func (s *SQLiteStore) TermFrequencies(ctx context.Context, limit int) ([]models.TermCount, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT lower(trim(query)) AS term, COUNT(*) AS freq
		 FROM search_queries
		 WHERE trim(query) != ''
		 GROUP BY term
		 ORDER BY freq DESC, MAX(searched_at) DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying term frequencies: %w", err)
	}
	defer rows.Close()

	var counts []models.TermCount
	for rows.Next() {
		var tc models.TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning term frequency: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// Count returns the total number of recorded searches.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_queries`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
