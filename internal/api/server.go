// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/valeXeich/Mangalib/internal/catalog/chapter"
	"github.com/valeXeich/Mangalib/internal/catalog/manga"
	"github.com/valeXeich/Mangalib/internal/catalog/reference"
	"github.com/valeXeich/Mangalib/internal/library/shelf"
	"github.com/valeXeich/Mangalib/internal/platform/config"
	"github.com/valeXeich/Mangalib/internal/platform/constants"
	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	"github.com/valeXeich/Mangalib/internal/social/comment"
	"github.com/valeXeich/Mangalib/internal/social/rating"
	"github.com/valeXeich/Mangalib/internal/users/account"
	"github.com/valeXeich/Mangalib/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the identity lifecycle (register, login, refresh, logout).
	Auth *auth.Handler

	// Account handles the authenticated member's private profile.
	Account *account.Handler

	// Manga handles the catalogue and discovery surfaces.
	Manga *manga.Handler

	// Chapter handles reading and releasing chapters.
	Chapter *chapter.Handler

	// Comment handles threaded discussions and voting.
	Comment *comment.Handler

	// Rating handles star scores and histograms.
	Rating *rating.Handler

	// Shelf handles per-user reading lists.
	Shelf *shelf.Handler

	// Reference manages genres, tags, creators, and publishers.
	Reference *reference.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/account", h.Account.Routes())
		api.Mount("/manga", h.Manga.Routes(h.Chapter.MangaChapters))
		api.Mount("/chapters", h.Chapter.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/ratings", h.Rating.Routes())
		api.Mount("/shelves", h.Shelf.Routes())
		api.Mount("/", h.Reference.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
