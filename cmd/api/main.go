package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"vendorportal/docs"
	"vendorportal/internal/cache"
	"vendorportal/internal/config"
	"vendorportal/internal/database"
	"vendorportal/internal/database/migration"
	handlers "vendorportal/internal/http/handler"
	"vendorportal/internal/http/middleware"
	"vendorportal/internal/logger"
	"vendorportal/internal/metrics"
	"vendorportal/internal/otel"
	"vendorportal/internal/portal"
	"vendorportal/internal/repository/postgres"
	"vendorportal/internal/service"
	"vendorportal/internal/storage"
)

// @title Vendor Portal Compliance API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	portalAPI, err := portal.NewClient(cfg.PortalAPI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize portal api client")
	}

	cacheStore, closeCache := newCacheStore(cfg.Cache, log)
	defer closeCache()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}
	recorder, err := metrics.New(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register document metrics")
	}

	uploadRepo := postgres.NewUploadPostgres(db)
	docSvc := service.NewDocumentService(portalAPI, objStore, uploadRepo, cacheStore, service.Options{
		CacheTTL:       time.Duration(cfg.Cache.TTLSec) * time.Second,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		FileBaseURL:    cfg.PublicBaseURL,
		Metrics:        recorder,
		Logger:         log,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.BodyLimit(),
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID(log))
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.BearerToken())

	handlers.RegisterRoutes(app, db, docSvc, reg)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("cache_backend", cfg.Cache.Backend).Msg("server_starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// newCacheStore picks the query cache backend. An unreachable Redis falls back to memory.
func newCacheStore(cfg config.CacheConfig, log zerolog.Logger) (cache.Store, func()) {
	if cfg.Backend == "redis" {
		r, err := cache.NewRedis(cfg)
		if err == nil {
			return r, func() { _ = r.Close() }
		}
		log.Warn().Err(err).Str("redis_addr", cfg.RedisAddr).Msg("redis_unavailable_using_memory_cache")
	}
	m := cache.NewMemory(time.Minute)
	return m, m.Close
}
