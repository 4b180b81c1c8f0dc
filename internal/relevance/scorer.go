// Package relevance computes query-to-candidate match scores used for
// default result ordering.
package relevance

import (
	"strings"
	"sync"
	"time"

	"github.com/gatherly/scout/internal/models"
)

// Scorer computes relevance scores. Weights can be swapped at runtime
// (config reload); scoring itself is pure given a weight snapshot.
type Scorer struct {
	mu      sync.RWMutex
	weights Weights
}

// NewScorer creates a scorer. A nil weights value uses defaults; zero fields
// in a non-nil value are filled with defaults.
func NewScorer(weights *Weights) *Scorer {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
		w.ApplyDefaults()
	}
	return &Scorer{weights: w}
}

// SetWeights replaces the scoring weights. Zero fields are filled with
// defaults. Safe for concurrent use with Score.
func (s *Scorer) SetWeights(weights Weights) {
	weights.ApplyDefaults()
	s.mu.Lock()
	s.weights = weights
	s.mu.Unlock()
}

// Weights returns a snapshot of the current weights.
func (s *Scorer) Weights() Weights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights
}

// Score returns the relevance of candidate for query at time now.
// Matching is case-insensitive over the trimmed query. The field rules are
// exclusive tiers: only the strongest matching rule contributes, so a prefix
// match can never accumulate enough bonus to overtake an exact match. A
// return of 0 means the candidate does not match and must be excluded from
// results; recency never turns a non-match into a match.
func (s *Scorer) Score(query string, candidate *models.SearchCandidate, now time.Time) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	w := s.Weights()

	title := strings.ToLower(candidate.Title)
	content := strings.ToLower(candidate.Content)

	var score float64
	switch {
	case title != "" && title == q:
		score = w.ExactTitleScore
	case title != "" && strings.HasPrefix(title, q):
		score = w.TitlePrefixScore
	case strings.Contains(title, q):
		score = w.TitleSubstringScore
	case strings.Contains(content, q):
		score = w.ContentMatchScore
	}
	if score == 0 {
		return 0
	}
	if w.RecencyEnabledOrDefault() {
		score += recencyBonus(now.Sub(candidate.CreatedAt), w)
	}
	return score
}

// recencyBonus returns the additive bonus for a candidate of the given age.
// The bonus is capped at the day tier; older than a month gets nothing.
func recencyBonus(age time.Duration, w Weights) float64 {
	if age < 0 {
		age = 0
	}
	switch {
	case age < 24*time.Hour:
		return w.RecencyDayBonus
	case age < 7*24*time.Hour:
		return w.RecencyWeekBonus
	case age < 30*24*time.Hour:
		return w.RecencyMonthBonus
	default:
		return 0
	}
}
