package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gatherly/scout/internal/metrics"
	"github.com/gatherly/scout/internal/models"
	"github.com/gatherly/scout/internal/normalize"
)

// Typed searches reuse the single-type pipeline from the global aggregator,
// skip the cross-type merge, and return type-specific result DTOs.

// SearchMeetings searches meetings only.
func (s *Service) SearchMeetings(ctx context.Context, req *models.SearchRequest) ([]*models.MeetingResult, error) {
	start := time.Now()
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return []*models.MeetingResult{}, nil
	}

	meetings, err := s.gateways.FindMeetings(ctx, gatewayQuery(q, &req.Filters))
	if err != nil {
		return nil, fmt.Errorf("searching meetings: %w", err)
	}

	byID := make(map[string]*models.Meeting, len(meetings))
	scored := make([]*models.SearchResult, 0, len(meetings))
	now := s.now()
	for _, m := range meetings {
		cand := normalize.Meeting(m)
		score := s.scorer.Score(q, cand, now)
		if score <= 0 {
			continue
		}
		byID[m.ID] = m
		scored = append(scored, &models.SearchResult{SearchCandidate: *cand, Score: score})
	}

	page := s.finishTyped(scored, req, models.EntityMeeting, time.Since(start))
	out := make([]*models.MeetingResult, 0, len(page))
	offset := (req.Page - 1) * req.PageSize
	for i, r := range page {
		out = append(out, &models.MeetingResult{
			Meeting: byID[r.ID],
			Score:   r.Score,
			Rank:    offset + i + 1,
		})
	}
	return out, nil
}

// SearchPosts searches posts only.
func (s *Service) SearchPosts(ctx context.Context, req *models.SearchRequest) ([]*models.PostResult, error) {
	start := time.Now()
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return []*models.PostResult{}, nil
	}

	posts, err := s.gateways.FindPosts(ctx, gatewayQuery(q, &req.Filters))
	if err != nil {
		return nil, fmt.Errorf("searching posts: %w", err)
	}

	byID := make(map[string]*models.Post, len(posts))
	scored := make([]*models.SearchResult, 0, len(posts))
	now := s.now()
	for _, p := range posts {
		cand := normalize.Post(p)
		score := s.scorer.Score(q, cand, now)
		if score <= 0 {
			continue
		}
		byID[p.ID] = p
		scored = append(scored, &models.SearchResult{SearchCandidate: *cand, Score: score})
	}

	page := s.finishTyped(scored, req, models.EntityPost, time.Since(start))
	out := make([]*models.PostResult, 0, len(page))
	offset := (req.Page - 1) * req.PageSize
	for i, r := range page {
		out = append(out, &models.PostResult{
			Post:  byID[r.ID],
			Score: r.Score,
			Rank:  offset + i + 1,
		})
	}
	return out, nil
}

// SearchComments searches comments only.
func (s *Service) SearchComments(ctx context.Context, req *models.SearchRequest) ([]*models.CommentResult, error) {
	start := time.Now()
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return []*models.CommentResult{}, nil
	}

	comments, err := s.gateways.FindComments(ctx, gatewayQuery(q, &req.Filters))
	if err != nil {
		return nil, fmt.Errorf("searching comments: %w", err)
	}

	byID := make(map[string]*models.Comment, len(comments))
	scored := make([]*models.SearchResult, 0, len(comments))
	now := s.now()
	for _, c := range comments {
		cand := normalize.Comment(c)
		score := s.scorer.Score(q, cand, now)
		if score <= 0 {
			continue
		}
		byID[c.ID] = c
		scored = append(scored, &models.SearchResult{SearchCandidate: *cand, Score: score})
	}

	page := s.finishTyped(scored, req, models.EntityComment, time.Since(start))
	out := make([]*models.CommentResult, 0, len(page))
	offset := (req.Page - 1) * req.PageSize
	for i, r := range page {
		c := byID[r.ID]
		out = append(out, &models.CommentResult{
			Comment: c,
			IsReply: c.IsReply(),
			Score:   r.Score,
			Rank:    offset + i + 1,
		})
	}
	return out, nil
}

// SearchUsers searches users only.
func (s *Service) SearchUsers(ctx context.Context, req *models.SearchRequest) ([]*models.UserResult, error) {
	start := time.Now()
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return []*models.UserResult{}, nil
	}

	users, err := s.gateways.FindUsers(ctx, gatewayQuery(q, &req.Filters))
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	byID := make(map[string]*models.User, len(users))
	scored := make([]*models.SearchResult, 0, len(users))
	now := s.now()
	for _, u := range users {
		cand := normalize.User(u)
		score := s.scorer.Score(q, cand, now)
		if score <= 0 {
			continue
		}
		byID[u.ID] = u
		scored = append(scored, &models.SearchResult{SearchCandidate: *cand, Score: score})
	}

	page := s.finishTyped(scored, req, models.EntityUser, time.Since(start))
	out := make([]*models.UserResult, 0, len(page))
	offset := (req.Page - 1) * req.PageSize
	for i, r := range page {
		out = append(out, &models.UserResult{
			User:  byID[r.ID],
			Score: r.Score,
			Rank:  offset + i + 1,
		})
	}
	return out, nil
}

// finishTyped sorts and paginates one type's scored results and records the
// search, sharing the global pipeline's ordering semantics.
func (s *Service) finishTyped(scored []*models.SearchResult, req *models.SearchRequest, typ models.EntityType, duration time.Duration) []*models.SearchResult {
	totalCount := len(scored)
	sortResults(scored, req.Filters.SortByOrDefault(), req.Filters.SortDirOrDefault())
	page := paginate(scored, req.Page, req.PageSize)

	metrics.ObserveSearch(string(typ), duration)
	if s.recorder != nil {
		s.recorder.Record(req.Query, string(typ), totalCount, duration, req.UserID)
	}
	return page
}
