package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	"github.com/BruksfildServices01/estate-listings/internal/cache"
	"github.com/BruksfildServices01/estate-listings/internal/config"
	dbpkg "github.com/BruksfildServices01/estate-listings/internal/db"
	"github.com/BruksfildServices01/estate-listings/internal/identity"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/metrics"
	"github.com/BruksfildServices01/estate-listings/internal/payment"
	"github.com/BruksfildServices01/estate-listings/internal/routes"
	"github.com/BruksfildServices01/estate-listings/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		logger.New("").Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.AppEnv)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// OUTBOUND CLIENTS
	// ======================================================
	var pageCache cache.PageCache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rc.Close() }()
		pageCache = rc
	} else {
		log.Warn().Msg("REDIS_ADDR not set, page cache disabled")
	}

	payments, err := payment.NewMercadoPago(cfg.Payment)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure payment provider")
	}
	if cfg.Payment.WebhookSecret == "" {
		log.Warn().Msg("MP_WEBHOOK_SECRET not set, every webhook will be rejected")
	}

	// An interface holding a typed nil would not compare equal to nil.
	var external identity.ExternalProvider
	if cfg.IdentityUserInfoURL != "" {
		external = identity.NewUserInfoClient(cfg.IdentityUserInfoURL, 0)
	}

	dispatcher := audit.NewDispatcher(audit.NewStore(db), log)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics.New(prometheus.DefaultRegisterer),
		Cache:    pageCache,
		Audit:    dispatcher,
		Blobs:    storage.NewS3Store(cfg.Storage),
		Payments: payments,
		Identity: external,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// Flush queued audit rows before the database goes away.
	dispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
