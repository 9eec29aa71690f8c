// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Cadenza catalog API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool).
//  5. Start the enrichment publisher on the configured broker.
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

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/cadenza/internal/api"
	"github.com/taibuivan/cadenza/internal/catalog/album"
	"github.com/taibuivan/cadenza/internal/catalog/artist"
	"github.com/taibuivan/cadenza/internal/catalog/genre"
	"github.com/taibuivan/cadenza/internal/catalog/song"
	"github.com/taibuivan/cadenza/internal/enrichment"
	"github.com/taibuivan/cadenza/internal/platform/broker"
	"github.com/taibuivan/cadenza/internal/platform/config"
	"github.com/taibuivan/cadenza/internal/platform/constants"
	"github.com/taibuivan/cadenza/internal/platform/migration"
	pgstore "github.com/taibuivan/cadenza/internal/platform/postgres"
	redisstore "github.com/taibuivan/cadenza/internal/platform/redis"
	"github.com/taibuivan/cadenza/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	logger := newLogger(slog.LevelInfo)
	logger.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(logger, err, "load configuration")

	if cfg.Debug {
		logger = newLogger(slog.LevelDebug)
		logger.Debug("debug_logging_enabled")
	}

	logger.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("broker", string(cfg.BrokerDriver)),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(logger, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger, cfg.Debug), "run migrations")

	// ── 4. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, logger)
	must(logger, err, "connect to postgres")

	checks := []api.Check{{
		Name: "postgres",
		Ping: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}}

	// ── 5. Enrichment ─────────────────────────────────────────────────────
	transport, brokerCheck, err := newTransport(startupCtx, cfg, logger)
	must(logger, err, "initialize enrichment transport")
	checks = append(checks, brokerCheck)

	publisher := enrichment.NewPublisher(transport, logger, enrichment.Options{
		Buffer:      cfg.EnrichmentBuffer,
		SendTimeout: cfg.SendTimeout(),
	})

	// ── 6. Authentication ─────────────────────────────────────────────────
	auth := api.Auth{}
	if cfg.JWTPubKeyPath != "" {
		verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(logger, err, "load jwt public key")
		auth.Verifier = verifier
	}

	keyring, err := sec.NewAPIKeyring(cfg.APIKeyHashes)
	must(logger, err, "load api keys")
	auth.Keys = keyring
	logger.Info("authentication_ready", slog.Bool("bearer_tokens", auth.Verifier != nil), slog.Int("api_keys", keyring.Len()))

	if cfg.IsProduction() && keyring.Len() == 0 {
		logger.Warn("no_ingestion_keys_configured")
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		Checks:     checks,
		Enrichment: publisher,
	}, logger)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Artist:    artist.NewHandler(artist.NewService(artist.NewPostgresRepository(pool), publisher, logger)),
		Album:     album.NewHandler(album.NewService(album.NewPostgresRepository(pool), publisher, logger)),
		Song:      song.NewHandler(song.NewService(song.NewPostgresRepository(pool), publisher, logger)),
		Genre:     genre.NewHandler(genre.NewService(genre.NewPostgresRepository(pool), logger)),
	}

	// ── 8. HTTP Server & Graceful Shutdown ────────────────────────────────
	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)
	server := api.NewServer(groupCtx, cfg, logger, auth, handlers)

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
		return server.Shutdown(constants.ShutdownTimeout)
	})

	serveErr := group.Wait()
	if serveErr != nil {
		logger.Error("server_error", slog.Any("error", serveErr))
	}

	// Requests are drained; flush the events they published before closing the pool.
	flushCtx, flushCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer flushCancel()

	if err := publisher.Close(flushCtx); err != nil {
		logger.Error("enrichment_flush_incomplete", slog.Any("error", err))
	}
	sent, failed, dropped := publisher.Stats()
	logger.Info("enrichment_stopped", slog.Uint64("sent", sent), slog.Uint64("failed", failed), slog.Uint64("dropped", dropped))

	pool.Close()

	if serveErr != nil {
		os.Exit(1)
	}
	logger.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// newTransport connects the enrichment transport selected by cfg and returns its readiness check.
//
// The AMQP broker dials lazily, so a broker outage at startup does not prevent the API from serving.
func newTransport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (enrichment.Transport, api.Check, error) {
	switch cfg.BrokerDriver {
	case config.BrokerRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, api.Check{}, err
		}
		return enrichment.NewRedisTransport(client, constants.EnrichmentQueue), api.Check{
			Name:     "redis",
			Optional: true,
			Ping:     func(ctx context.Context) error { return redisstore.Ping(ctx, client) },
		}, nil

	default:
		amqpBroker := broker.NewAMQP(cfg.BrokerURL, enrichment.DeclareQueue(constants.EnrichmentQueue), constants.EnrichmentRedialBackoff, logger)
		return enrichment.NewAMQPTransport(amqpBroker, constants.EnrichmentQueue), api.Check{
			Name:     "amqp",
			Optional: true,
			Ping:     amqpBroker.Ping,
		}, nil
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(logger *slog.Logger, err error, step string) {
	if err != nil {
		logger.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
