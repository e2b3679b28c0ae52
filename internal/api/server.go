// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/core/lead"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
	"github.com/joycdecor/joycdecor/internal/platform/middleware"
	"github.com/joycdecor/joycdecor/internal/users/auth"
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
type Handlers struct {
	// Liveness is the /health handler; it answers 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; it answers 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles accounts, sessions and password resets.
	Auth *auth.Handler

	// Catalog serves the gallery, item management and media assets.
	Catalog *catalog.Handler

	// Lead builds WhatsApp redirects for the contact form.
	Lead *lead.Handler
}

// Settings is the slice of configuration the router needs.
type Settings interface {
	middleware.AppConfig
	ListenPort() string
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. Limiters stop sweeping when context ends.
func NewServer(context context.Context, settings Settings, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(context, settings, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + settings.ListenPort(),
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding a listener.
func NewRouter(context context.Context, settings middleware.AppConfig, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(settings))
	r.Use(chimw.CleanPath)

	// Public forms get a much smaller budget than browsing.
	forms := middleware.NewRateLimiter(context, constants.FormRateLimitRPS, constants.FormRateLimitBurst)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.With(forms.Handler).Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Auth.UserRoutes())

		api.Mount("/items", h.Catalog.Routes())
		api.Mount("/assets", h.Catalog.AssetRoutes())
		api.Get("/categories", h.Catalog.ListCategories)

		api.With(forms.Handler).Mount("/leads", h.Lead.Routes())
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
