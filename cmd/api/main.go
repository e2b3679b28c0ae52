// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the JoycDecor HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the asset store, mailer and domain services.
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/joycdecor/joycdecor/internal/api"
	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/core/lead"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/internal/platform/config"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
	"github.com/joycdecor/joycdecor/internal/platform/mailer"
	"github.com/joycdecor/joycdecor/internal/platform/migration"
	pgstore "github.com/joycdecor/joycdecor/internal/platform/postgres"
	redisstore "github.com/joycdecor/joycdecor/internal/platform/redis"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
	"github.com/joycdecor/joycdecor/internal/users/auth"
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
		slog.String("asset_backend", cfg.AssetBackend),
	)

	// Root context for startup. A 30s deadline surfaces misconfiguration
	// quickly instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Process context; cancelled on shutdown to stop background sweepers.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
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
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Infrastructure Services ────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	assets, err := newAssetStore(startupCtx, cfg, log)
	must(log, err, "initialize asset store")

	mail := newMailer(cfg, log)
	whatsapp := lead.NewLinker(cfg.WhatsAppNumber)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	catalogService := catalog.NewService(
		catalog.NewPostgresRepository(pool),
		catalog.NewRedisListCache(rdb, log),
		assets,
		log,
	)

	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewResetTokenRepository(rdb),
		tokenService,
		mail,
		cfg.PublicSiteURL,
		log,
	)

	liveness, readiness := api.NewHealthHandlers(healthChecks(pool, rdb), log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Catalog:   catalog.NewHandler(catalogService, whatsapp),
		Lead:      lead.NewHandler(whatsapp),
	}

	server := api.NewServer(appCtx, cfg, log, tokenService, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// newAssetStore selects the media backend named by ASSET_BACKEND.
func newAssetStore(context context.Context, cfg *config.Config, log *slog.Logger) (assetstore.Store, error) {
	if cfg.AssetBackend == config.AssetBackendS3 {
		store, err := assetstore.NewS3Store(context, assetstore.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		}, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	return assetstore.NewCloudinaryStore(assetstore.CloudinaryConfig{
		CloudName:    cfg.CloudinaryCloudName,
		APIKey:       cfg.CloudinaryAPIKey,
		APISecret:    cfg.CloudinaryAPISecret,
		UploadPreset: cfg.CloudinaryUploadPreset,
	}, log), nil
}

// newMailer sends through SMTP when credentials exist, otherwise logs.
func newMailer(cfg *config.Config, log *slog.Logger) mailer.Mailer {
	if !cfg.MailEnabled() {
		log.Warn("smtp_disabled_mail_will_be_logged")
		return mailer.LogMailer{Logger: log}
	}
	return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
}

func healthChecks(pool *pgxpool.Pool, rdb *redis.Client) []api.HealthCheck {
	return []api.HealthCheck{
		{Name: "postgres", Check: func(context context.Context) error { return pgstore.Ping(context, pool) }},
		{Name: "redis", Check: func(context context.Context) error { return redisstore.Ping(context, rdb) }},
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
