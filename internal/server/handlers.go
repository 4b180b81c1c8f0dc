package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gatherly/scout/internal/models"
)

func (s *Server) handleGlobalSearch(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSearchRequest(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("global search request",
		zap.String("query", req.Query),
		zap.Int("page", req.Page),
		zap.Int("page_size", req.PageSize),
	)
	results, err := s.engine.GlobalSearch(r.Context(), req)
	if err != nil {
		s.respondEngineError(w, r.Context(), "global search failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleTypedSearch(w http.ResponseWriter, r *http.Request) {
	typ, err := models.ParseEntityType(chi.URLParam(r, "type"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := s.parseSearchRequest(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var results interface{}
	switch typ {
	case models.EntityMeeting:
		results, err = s.engine.SearchMeetings(r.Context(), req)
	case models.EntityPost:
		results, err = s.engine.SearchPosts(r.Context(), req)
	case models.EntityComment:
		results, err = s.engine.SearchComments(r.Context(), req)
	case models.EntityUser:
		results, err = s.engine.SearchUsers(r.Context(), req)
	}
	if err != nil {
		s.respondEngineError(w, r.Context(), "typed search failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, results)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	trimmed := strings.TrimSpace(q)
	if len(trimmed) < models.MinSuggestionQueryLength {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	if len(trimmed) > models.MaxSuggestionQueryLength {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("query must be at most %d characters", models.MaxSuggestionQueryLength))
		return
	}
	limit, err := parsePositiveInt(r.URL.Query().Get("limit"), s.config.Search.DefaultSuggestions)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if limit > s.config.Search.MaxSuggestions {
		limit = s.config.Search.MaxSuggestions
	}

	suggestions, err := s.suggester.Suggestions(r.Context(), trimmed, limit)
	if err != nil {
		s.respondEngineError(w, r.Context(), "suggestions failed", err)
		return
	}
	if suggestions == nil {
		suggestions = []*models.SearchSuggestion{}
	}
	s.respondJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handlePopularTerms(w http.ResponseWriter, r *http.Request) {
	limit, err := parsePositiveInt(r.URL.Query().Get("limit"), s.config.Search.DefaultPopularTerms)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if limit > s.config.Search.MaxPopularTerms {
		limit = s.config.Search.MaxPopularTerms
	}

	terms, err := s.analytics.PopularTerms(r.Context(), limit)
	if err != nil {
		s.logger.Error("popular terms failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if terms == nil {
		terms = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"terms": terms})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	counts, err := s.gateways.CountEntities(ctx)
	if err != nil {
		s.logger.Error("status: count entities failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	searches, err := s.analytics.Count(ctx)
	if err != nil {
		s.logger.Error("status: count searches failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"entities":          counts,
		"recorded_searches": searches,
		"config": map[string]interface{}{
			"database_path":  s.config.Storage.DatabasePath,
			"analytics_path": s.config.Storage.AnalyticsPath,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseSearchRequest parses and validates the common search query parameters.
func (s *Server) parseSearchRequest(params url.Values) (*models.SearchRequest, error) {
	req := &models.SearchRequest{
		Query:    params.Get("q"),
		PageSize: s.config.Search.DefaultPageSize,
		UserID:   params.Get("user_id"),
	}

	if pageStr := params.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return nil, fmt.Errorf("invalid page: %q", pageStr)
		}
		req.Page = page
	}
	if sizeStr := params.Get("page_size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid page_size: %q", sizeStr)
		}
		req.PageSize = size
	}

	for _, raw := range params["types"] {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			typ, err := models.ParseEntityType(part)
			if err != nil {
				return nil, err
			}
			req.Filters.Types = append(req.Filters.Types, typ)
		}
	}
	for _, raw := range params["author"] {
		for _, part := range strings.Split(raw, ",") {
			if name := strings.TrimSpace(part); name != "" {
				req.Filters.Authors = append(req.Filters.Authors, name)
			}
		}
	}

	if fromStr := params.Get("from"); fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %q", fromStr)
		}
		req.Filters.From = &parsed
	}
	if toStr := params.Get("to"); toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %q", toStr)
		}
		endOfDay := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 999999999, parsed.Location())
		req.Filters.To = &endOfDay
	}

	if activeStr := params.Get("active_only"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid active_only: %q", activeStr)
		}
		req.Filters.ActiveOnly = &active
	}

	if sortBy := params.Get("sort_by"); sortBy != "" {
		req.Filters.SortBy = models.SortField(strings.ToLower(sortBy))
	}
	if sortDir := params.Get("sort_dir"); sortDir != "" {
		req.Filters.SortDir = models.SortDirection(strings.ToLower(sortDir))
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// respondEngineError maps engine failures to transport status codes:
// cancellation becomes 503, everything else 500.
func (s *Server) respondEngineError(w http.ResponseWriter, ctx context.Context, msg string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		s.logger.Warn(msg, zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, "search cancelled")
		return
	}
	s.logger.Error(msg, zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, err.Error())
}

func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid value: %q", raw)
	}
	return n, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
