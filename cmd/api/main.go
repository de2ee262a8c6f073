// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Temple content API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire storage, token verification, metrics and domain handlers.
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

	"github.com/taibuivan/temple/internal/api"
	"github.com/taibuivan/temple/internal/core/category"
	"github.com/taibuivan/temple/internal/core/deity"
	"github.com/taibuivan/temple/internal/core/subcategory"
	"github.com/taibuivan/temple/internal/platform/cache"
	"github.com/taibuivan/temple/internal/platform/config"
	"github.com/taibuivan/temple/internal/platform/constants"
	"github.com/taibuivan/temple/internal/platform/ctxutil"
	"github.com/taibuivan/temple/internal/platform/metrics"
	"github.com/taibuivan/temple/internal/platform/migration"
	pgstore "github.com/taibuivan/temple/internal/platform/postgres"
	redisstore "github.com/taibuivan/temple/internal/platform/redis"
	"github.com/taibuivan/temple/internal/platform/sec"
	"github.com/taibuivan/temple/internal/platform/storage"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int("bulk_import_concurrency", cfg.BulkImportConcurrency),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.BulkImportConcurrency, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Infrastructure ─────────────────────────────────────────────────
	verifier, err := sec.LoadTokenVerifier(cfg.JWTPubKeyPath, cfg.JWTIssuer)
	must(log, err, "load jwt public key")

	media, err := storage.NewS3(startupCtx, storage.Config{
		Endpoint:   cfg.S3Endpoint,
		Region:     cfg.S3Region,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Bucket:     cfg.S3Bucket,
		CDNBaseURL: cfg.CDNBaseURL,
	}, log)
	must(log, err, "initialize object storage")

	appMetrics := metrics.New()
	registry := metrics.NewRegistry(appMetrics)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	categoryService := category.NewService(
		category.NewPostgresRepository(pool),
		cache.NewRedis[*category.Category](rdb, constants.RedisPrefixCategory, constants.DefaultCacheTTL, log),
		log,
	)

	subcategoryService := subcategory.NewService(
		subcategory.NewPostgresRepository(pool),
		categoryService,
		cache.NewRedis[*subcategory.Subcategory](rdb, constants.RedisPrefixSubcategory, constants.DefaultCacheTTL, log),
		log,
	)

	deityService := deity.NewService(
		deity.NewPostgresRepository(pool),
		media,
		cache.NewRedis[*deity.Deity](rdb, constants.RedisPrefixDeity, constants.DefaultCacheTTL, log),
		appMetrics,
		cfg.BulkImportConcurrency,
		log,
	)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Metrics:     metrics.Handler(registry),
		Deity:       deity.NewHandler(deityService, cfg.MaxUploadBytes),
		Category:    category.NewHandler(categoryService),
		Subcategory: subcategory.NewHandler(subcategoryService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, verifier, appMetrics, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests, bulk imports included, time to complete.
	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// newLogger writes JSON to stdout; records logged with a request context also
// carry request_id, editor_id and any attributes added through ctxutil.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(ctxutil.NewLogHandler(handler)).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
