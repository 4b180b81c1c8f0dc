// Package suggest produces ranked autocomplete suggestions from entity
// titles and historical search terms.
package suggest

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gatherly/scout/internal/analytics"
	"github.com/gatherly/scout/internal/gateway"
	"github.com/gatherly/scout/internal/models"
)

const defaultCorpusLimit = 500

// Engine computes suggestions. The corpus is rebuilt per request from the
// gateways and the analytics store; suggestions are derived, never persisted.
type Engine struct {
	gateways    gateway.Reader
	analytics   analytics.Store
	logger      *zap.Logger
	corpusLimit int
}

// NewEngine creates a suggestion engine.
func NewEngine(gateways gateway.Reader, store analytics.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		gateways:    gateways,
		analytics:   store,
		logger:      logger,
		corpusLimit: defaultCorpusLimit,
	}
}

// candidate is one corpus entry under consideration.
type candidate struct {
	text   string
	source string
	count  int
	prefix bool
}

// Suggestions returns up to max suggestions for query. Prefix matches rank
// ahead of substring matches, then by historical frequency descending, then
// by text ascending. An empty query returns no suggestions.
func (e *Engine) Suggestions(ctx context.Context, query string, max int) ([]*models.SearchSuggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || max <= 0 {
		return nil, nil
	}

	// The two corpus sources are independent: a failure in one degrades the
	// suggestion set instead of failing the request.
	titles, err := e.gateways.Titles(ctx, e.corpusLimit)
	if err != nil {
		e.logger.Warn("suggestion title corpus unavailable", zap.Error(err))
	}
	terms, err := e.analytics.TermFrequencies(ctx, e.corpusLimit)
	if err != nil {
		e.logger.Warn("suggestion term corpus unavailable", zap.Error(err))
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	freq := make(map[string]int, len(terms))
	for _, tc := range terms {
		freq[tc.Term] = tc.Count
	}

	seen := make(map[string]struct{})
	var matched []candidate
	for _, title := range titles {
		c, ok := match(q, title.Text, string(title.Type), freq[strings.ToLower(title.Text)])
		if !ok {
			continue
		}
		key := strings.ToLower(title.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		matched = append(matched, c)
	}
	for _, tc := range terms {
		c, ok := match(q, tc.Term, "query", tc.Count)
		if !ok {
			continue
		}
		if _, dup := seen[tc.Term]; dup {
			continue
		}
		seen[tc.Term] = struct{}{}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].prefix != matched[j].prefix {
			return matched[i].prefix
		}
		if matched[i].count != matched[j].count {
			return matched[i].count > matched[j].count
		}
		return strings.ToLower(matched[i].text) < strings.ToLower(matched[j].text)
	})

	if len(matched) > max {
		matched = matched[:max]
	}
	suggestions := make([]*models.SearchSuggestion, 0, len(matched))
	for _, c := range matched {
		suggestions = append(suggestions, &models.SearchSuggestion{
			Text:   c.text,
			Source: c.source,
			Count:  c.count,
		})
	}
	return suggestions, nil
}

// match classifies text against the normalized query q.
func match(q, text, source string, count int) (candidate, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" || !strings.Contains(lower, q) {
		return candidate{}, false
	}
	return candidate{
		text:   strings.TrimSpace(text),
		source: source,
		count:  count,
		prefix: strings.HasPrefix(lower, q),
	}, true
}
