// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

// Command api is the entry point for the Tuition LMS HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaferpilakkal/tuition-lms/internal/api"
	"github.com/jaferpilakkal/tuition-lms/internal/core/attendance"
	"github.com/jaferpilakkal/tuition-lms/internal/core/class"
	"github.com/jaferpilakkal/tuition-lms/internal/core/dashboard"
	"github.com/jaferpilakkal/tuition-lms/internal/core/lesson"
	"github.com/jaferpilakkal/tuition-lms/internal/core/task"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/config"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/constants"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/migration"
	pgstore "github.com/jaferpilakkal/tuition-lms/internal/platform/postgres"
	redisstore "github.com/jaferpilakkal/tuition-lms/internal/platform/redis"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/users/auth"
	"github.com/jaferpilakkal/tuition-lms/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "tuition-lms"))
	slog.SetDefault(log)

	log.Info("[TuitionLMS] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "tuition-lms"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application-lifetime context for background middleware routines.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	profileRepository := profile.NewRepository(pool)
	profileService := profile.NewService(profileRepository)
	profileResolver := profile.NewResolver(profileRepository, log)
	profileHandler := profile.NewHandler(profileService)

	accountRepository := auth.NewAccountRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	sessionCache := auth.NewSessionCache(rdb)
	authGateway := auth.NewPasswordGateway(accountRepository, sessionRepository, sessionCache, log)
	authService := auth.NewService(authGateway, profileResolver, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	classService := class.NewService(class.NewPostgresRepository(pool), log)
	classHandler := class.NewHandler(classService)

	lessonService := lesson.NewService(lesson.NewPostgresRepository(pool), log)
	lessonHandler := lesson.NewHandler(lessonService)

	attendanceService := attendance.NewService(attendance.NewPostgresRepository(pool), log)
	attendanceHandler := attendance.NewHandler(attendanceService)

	taskService := task.NewService(task.NewPostgresRepository(pool), log)
	taskHandler := task.NewHandler(taskService)

	dashboardService := dashboard.NewService(dashboard.NewPostgresRepository(pool), log)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Profile:    profileHandler,
		Class:      classHandler,
		Lesson:     lessonHandler,
		Attendance: attendanceHandler,
		Task:       taskHandler,
		Dashboard:  dashboardHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
