package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"datasetregistry/docs"
	"datasetregistry/internal/clock"
	"datasetregistry/internal/config"
	"datasetregistry/internal/core"
	"datasetregistry/internal/database"
	handlers "datasetregistry/internal/http/handler"
	"datasetregistry/internal/http/middleware"
	"datasetregistry/internal/identity"
	"datasetregistry/internal/logger"
	"datasetregistry/internal/otel"
	"datasetregistry/internal/service"
	"datasetregistry/internal/storage"
)

// Multipart framing on top of the largest accepted artifact.
const bodyLimit = core.MaxFileSize + 4<<20

// @title Dataset Registry API
// @version 1.0
// @description Dataset registry with linked contributor reputation accounting.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.NewStdout(cfg.LogLevel, logger.LoadLocation(cfg.TimeZone))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("tracing_init_failed", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	ledger, closeLedger, err := database.OpenLedger(ctx, cfg, log)
	if err != nil {
		log.Fatal("ledger_open_failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := closeLedger(); err != nil {
			log.Warn("ledger_close_failed", zap.Error(err))
		}
	}()

	// Artifact storage is optional; without it uploads answer 503.
	var objStore storage.Storage
	if cfg.ObjectStorageEnabled() {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal("object_storage_init_failed", zap.String("endpoint", cfg.MinIO.Endpoint), zap.Error(err))
		}
	} else {
		log.Info("object_storage_disabled")
	}

	policy, err := identity.ParsePolicy(cfg.AuthPolicy)
	if err != nil {
		log.Fatal("invalid_auth_policy", zap.String("policy", cfg.AuthPolicy), zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	svcMetrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}

	svc := service.NewRegistryService(ledger, objStore, service.Options{
		Clock:         clock.System{},
		Policy:        policy,
		Metrics:       svcMetrics,
		Logger:        log,
		PresignExpiry: time.Duration(cfg.MinIO.PresignExpirySec) * time.Second,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, ledger, svc, reg)

	configureSwagger(docs.SwaggerInfo, cfg.AppHost)
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		log.Info("server_shutdown")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Warn("server_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_start", zap.String("addr", addr), zap.String("store_driver", cfg.StoreDriver), zap.String("auth_policy", string(policy)))
	if err := app.Listen(addr); err != nil {
		log.Error("server_failed", zap.Error(err))
	}
}

// configureSwagger sets the advertised host once at startup; the spec is
// shared by every request. Swagger 2.0 clients fall back to the host and
// scheme the document was served from when these are empty.
func configureSwagger(info *swag.Spec, host string) {
	info.Host = host
	info.Schemes = nil
}
