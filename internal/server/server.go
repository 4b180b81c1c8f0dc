// Package server provides the HTTP API for Scout.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gatherly/scout/internal/analytics"
	"github.com/gatherly/scout/internal/config"
	"github.com/gatherly/scout/internal/gateway"
	"github.com/gatherly/scout/internal/metrics"
	"github.com/gatherly/scout/internal/search"
	"github.com/gatherly/scout/internal/suggest"
)

// Server is the HTTP server for the Scout API.
type Server struct {
	engine    *search.Service
	suggester *suggest.Engine
	analytics analytics.Store
	gateways  gateway.Reader
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Service,
	suggester *suggest.Engine,
	store analytics.Store,
	gateways gateway.Reader,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:    engine,
		suggester: suggester,
		analytics: store,
		gateways:  gateways,
		config:    cfg,
		logger:    logger,
	}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(metrics.Middleware())

	r.Get("/api/v1/search", s.handleGlobalSearch)
	r.Get("/api/v1/search/{type}", s.handleTypedSearch)
	r.Get("/api/v1/suggestions", s.handleSuggestions)
	r.Get("/api/v1/popular", s.handlePopularTerms)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
