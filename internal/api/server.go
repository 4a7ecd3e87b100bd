// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

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

	"github.com/jaferpilakkal/tuition-lms/internal/core/attendance"
	"github.com/jaferpilakkal/tuition-lms/internal/core/class"
	"github.com/jaferpilakkal/tuition-lms/internal/core/dashboard"
	"github.com/jaferpilakkal/tuition-lms/internal/core/lesson"
	"github.com/jaferpilakkal/tuition-lms/internal/core/task"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/config"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/constants"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/middleware"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/auth"
	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
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

	// Auth handles the session lifecycle (login, logout, resume).
	Auth *auth.Handler

	// Profile handles user administration. Admin only.
	Profile *profile.Handler

	// Class manages classes and enrollments.
	Class *class.Handler

	// Lesson manages scheduled lessons.
	Lesson *lesson.Handler

	// Attendance manages marking sheets and attendance history.
	Attendance *attendance.Handler

	// Task manages tasks, submissions, and reviews.
	Task *task.Handler

	// Dashboard serves the per-role landing aggregates.
	Dashboard *dashboard.Handler
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

		// Everything below requires an authenticated caller.
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)

			// User administration is restricted to admins.
			authed.Route("/users", func(users chi.Router) {
				users.Use(middleware.RequireRoles(sec.RoleAdmin))
				users.Mount("/", h.Profile.Routes())
			})

			authed.Route("/classes", h.Class.RegisterRoutes)
			authed.Route("/lessons", h.Lesson.RegisterRoutes)
			authed.Route("/attendance", h.Attendance.RegisterRoutes)
			authed.Route("/tasks", h.Task.RegisterRoutes)
			authed.Route("/dashboard", h.Dashboard.RegisterRoutes)
		})
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
