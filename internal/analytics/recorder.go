package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gatherly/scout/internal/models"
)

const defaultRecordTimeout = 2 * time.Second

// Recorder appends query records best-effort. Record never blocks the caller
// and never surfaces an error: the write runs on its own goroutine with a
// detached timeout context, zero retries, and failures logged at Warn.
type Recorder struct {
	store   Store
	logger  *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		store:   store,
		logger:  logger,
		timeout: defaultRecordTimeout,
	}
}

// Record appends a search-query record asynchronously.
func (r *Recorder) Record(query, searchType string, resultCount int, duration time.Duration, userID string) {
	record := &models.QueryRecord{
		Query:       query,
		SearchType:  searchType,
		ResultCount: resultCount,
		DurationMS:  duration.Milliseconds(),
		SearchedAt:  time.Now(),
		UserID:      userID,
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.store.Append(ctx, record); err != nil {
			r.logger.Warn("search analytics recording failed",
				zap.String("query", query),
				zap.String("search_type", searchType),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until all in-flight recordings finish. Used on shutdown and in
// tests; searches never call it.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
