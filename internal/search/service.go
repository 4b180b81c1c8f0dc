// Package search provides the cross-entity search engine: concurrent
// per-type matching, relevance scoring, merged ranking, and pagination.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gatherly/scout/internal/analytics"
	"github.com/gatherly/scout/internal/gateway"
	"github.com/gatherly/scout/internal/metrics"
	"github.com/gatherly/scout/internal/models"
	"github.com/gatherly/scout/internal/normalize"
	"github.com/gatherly/scout/internal/relevance"
)

// Service runs global and typed searches against the entity gateways.
type Service struct {
	gateways gateway.Reader
	scorer   *relevance.Scorer
	recorder *analytics.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a search service. recorder may be nil to disable
// analytics recording.
func NewService(gateways gateway.Reader, scorer *relevance.Scorer, recorder *analytics.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateways: gateways,
		scorer:   scorer,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// typeResult is the outcome of searching a single entity type.
type typeResult struct {
	typ     models.EntityType
	results []*models.SearchResult
	err     error
}

// GlobalSearch fans the query out across all requested entity types,
// scores and merges the matches, and returns one sorted, paginated result
// set with per-type match counts.
//
// An empty or whitespace query returns an empty result set without error.
// A single failing entity type degrades to an empty contribution; the
// search fails only when every requested type failed or the context was
// cancelled.
func (s *Service) GlobalSearch(ctx context.Context, req *models.SearchRequest) (*models.SearchResults, error) {
	start := time.Now()
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return s.emptyResults(req, time.Since(start)), nil
	}

	types := req.Filters.ActiveTypes()
	resultChan := make(chan typeResult, len(types))
	for _, typ := range types {
		go func(t models.EntityType) {
			results, err := s.searchType(ctx, t, q, &req.Filters)
			resultChan <- typeResult{typ: t, results: results, err: err}
		}(typ)
	}

	byType := make(map[models.EntityType][]*models.SearchResult, len(types))
	var typeErrs []error
	for range types {
		r := <-resultChan
		if r.err != nil {
			typeErrs = append(typeErrs, fmt.Errorf("%s: %w", r.typ, r.err))
			s.logger.Warn("entity type search failed",
				zap.String("type", string(r.typ)),
				zap.String("query", q),
				zap.Error(r.err),
			)
			metrics.GatewayFailure(string(r.typ))
			continue
		}
		byType[r.typ] = r.results
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search cancelled: %w", err)
	}
	if len(typeErrs) == len(types) {
		return nil, fmt.Errorf("search failed for all entity types: %w", errors.Join(typeErrs...))
	}

	// Merge in the requested type order so equal sort keys keep a
	// deterministic order across identical invocations.
	typeCounts := make(map[models.EntityType]int, len(types))
	var merged []*models.SearchResult
	for _, t := range types {
		typeCounts[t] = len(byType[t])
		merged = append(merged, byType[t]...)
	}
	totalCount := len(merged)

	sortResults(merged, req.Filters.SortByOrDefault(), req.Filters.SortDirOrDefault())
	paged := paginate(merged, req.Page, req.PageSize)

	duration := time.Since(start)
	metrics.ObserveSearch("global", duration)
	if s.recorder != nil {
		s.recorder.Record(req.Query, "global", totalCount, duration, req.UserID)
	}

	results := &models.SearchResults{
		Results:    paged,
		TotalCount: totalCount,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Query:      req.Query,
		DurationMS: duration.Milliseconds(),
		TypeCounts: typeCounts,
	}
	results.Finalize()
	return results, nil
}

// searchType runs the fetch -> normalize -> score -> filter pipeline for one
// entity type. Candidates that score zero are dropped, never returned.
func (s *Service) searchType(ctx context.Context, typ models.EntityType, q string, filters *models.SearchFilters) ([]*models.SearchResult, error) {
	gq := gatewayQuery(q, filters)
	now := s.now()

	var candidates []*models.SearchCandidate
	switch typ {
	case models.EntityMeeting:
		meetings, err := s.gateways.FindMeetings(ctx, gq)
		if err != nil {
			return nil, err
		}
		for _, m := range meetings {
			candidates = append(candidates, normalize.Meeting(m))
		}
	case models.EntityPost:
		posts, err := s.gateways.FindPosts(ctx, gq)
		if err != nil {
			return nil, err
		}
		for _, p := range posts {
			candidates = append(candidates, normalize.Post(p))
		}
	case models.EntityComment:
		comments, err := s.gateways.FindComments(ctx, gq)
		if err != nil {
			return nil, err
		}
		for _, c := range comments {
			candidates = append(candidates, normalize.Comment(c))
		}
	case models.EntityUser:
		users, err := s.gateways.FindUsers(ctx, gq)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			candidates = append(candidates, normalize.User(u))
		}
	default:
		return nil, fmt.Errorf("unknown entity type: %q", typ)
	}

	results := make([]*models.SearchResult, 0, len(candidates))
	for _, cand := range candidates {
		score := s.scorer.Score(q, cand, now)
		if score <= 0 {
			continue
		}
		results = append(results, &models.SearchResult{
			SearchCandidate: *cand,
			Score:           score,
		})
	}
	return results, nil
}

// gatewayQuery converts request filters into the gateway filter value.
func gatewayQuery(q string, filters *models.SearchFilters) gateway.Query {
	return gateway.Query{
		Text:       q,
		ActiveOnly: filters.ActiveOnlyOrDefault(),
		From:       filters.From,
		To:         filters.To,
		Authors:    filters.Authors,
	}
}

// emptyResults builds the zero-match response for an empty query.
func (s *Service) emptyResults(req *models.SearchRequest, duration time.Duration) *models.SearchResults {
	results := &models.SearchResults{
		Results:    []*models.SearchResult{},
		TotalCount: 0,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Query:      req.Query,
		DurationMS: duration.Milliseconds(),
		TypeCounts: make(map[models.EntityType]int),
	}
	results.Finalize()
	return results
}
