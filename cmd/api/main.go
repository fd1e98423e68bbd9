package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zotalabs/tokenwatch/internal/application/bus"
	"github.com/zotalabs/tokenwatch/internal/application/services"
	"github.com/zotalabs/tokenwatch/internal/config"
	"github.com/zotalabs/tokenwatch/internal/domain/entities"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/cache"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/database"
	"github.com/zotalabs/tokenwatch/internal/infrastructure/markets"
	"github.com/zotalabs/tokenwatch/internal/presentation/handlers"
	"github.com/zotalabs/tokenwatch/internal/presentation/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.Log.Level)
	defer logger.Sync()

	logger.Info("Starting tokenwatch API",
		zap.Int("port", cfg.API.Port),
	)

	// Connect to database
	db, err := database.NewPostgresDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis cache (optional)
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cfg.Redis, cfg.API.CacheTTL, logger)
	if err != nil {
		logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	// Create repositories
	projectRepo := database.NewProjectRepo(db.DB())
	tokenRepo := database.NewTokenRepo(db.DB())
	holderRepo := database.NewHolderRepo(db.DB())
	eventRepo := database.NewEventRepo(db.DB())
	analysisRepo := database.NewAnalysisRepo(db.DB())

	// Notification bus; the recorder turns every notification into an
	// event row
	notifications := bus.New(logger)
	notifications.Subscribe(bus.NewRecorder(eventRepo, logger))

	// Create external data clients
	dexClient := markets.NewDexScreenerClient(cfg.Providers, logger)
	geckoClient := markets.NewCoinGeckoClient(cfg.Providers, logger)
	explorerClient := markets.NewExplorerClient(cfg.Providers, logger)
	solscanClient := markets.NewSolscanClient(cfg.Providers, logger)
	twitterClient := markets.NewTwitterClient(cfg.Providers, logger)

	// Create services
	projectService := services.NewProjectService(projectRepo, tokenRepo, holderRepo, eventRepo, redisCache, notifications, logger)
	tokenService := services.NewTokenService(tokenRepo, projectRepo, redisCache, notifications, logger)
	holderService := services.NewHolderService(holderRepo, projectRepo, redisCache, notifications, logger)
	eventService := services.NewEventService(eventRepo, projectRepo, logger)
	statsService := services.NewStatsService(projectRepo, tokenRepo, holderRepo, eventRepo, redisCache, logger)
	marketService := services.NewMarketService(dexClient, geckoClient, twitterClient, redisCache, logger)
	intelligenceService := services.NewIntelligenceService(
		holderRepo, projectRepo, analysisRepo,
		dexClient, geckoClient, explorerClient, solscanClient, twitterClient,
		notifications, logger,
	)
	reportService := services.NewReportService(
		analysisRepo,
		dexClient, explorerClient, solscanClient, twitterClient,
		notifications, logger,
	)

	// Create handlers
	projectsHandler := handlers.NewProjectsHandler(projectService, logger)
	tokensHandler := handlers.NewTokensHandler(tokenService, logger)
	holdersHandler := handlers.NewHoldersHandler(holderService, logger)
	eventsHandler := handlers.NewEventsHandler(eventService, logger)
	statsHandler := handlers.NewStatsHandler(statsService, logger)
	marketHandler := handlers.NewMarketHandler(marketService, logger)
	intelligenceHandler := handlers.NewIntelligenceHandler(intelligenceService, logger)
	reportHandler := handlers.NewReportHandler(reportService, logger)

	var cacheChecker handlers.HealthChecker
	if redisCache != nil {
		cacheChecker = redisCache
	}
	healthHandler := handlers.NewHealthHandler(db, cacheChecker)

	// Setup router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RateLimiter(cfg.API.RateLimitRPS))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/projects", projectsHandler.List)
		r.Post("/projects", projectsHandler.Create)
		r.Get("/projects/{id}", projectsHandler.Get)
		r.Put("/projects/{id}", projectsHandler.Update)
		r.Delete("/projects/{id}", projectsHandler.Delete)

		r.Get("/tokens", tokensHandler.List)
		r.Post("/tokens", tokensHandler.Create)
		r.Get("/tokens/{id}", tokensHandler.Get)
		r.Put("/tokens/{id}", tokensHandler.Update)
		r.Delete("/tokens/{id}", tokensHandler.Delete)

		r.Get("/holders", holdersHandler.List)
		r.Post("/holders", holdersHandler.Create)
		r.Get("/holders/{id}", holdersHandler.Get)
		r.Put("/holders/{id}", holdersHandler.Update)
		r.Delete("/holders/{id}", holdersHandler.Delete)

		r.Get("/events", eventsHandler.List)
		r.Post("/events", eventsHandler.Create)
		r.Delete("/events/{id}", eventsHandler.Delete)

		r.Get("/stats", statsHandler.Overview)

		r.Get("/market/top", marketHandler.TopCoins)
		r.Get("/market/trending", marketHandler.Trending)
		r.Get("/market/search", marketHandler.Search)
		r.Get("/market/token", marketHandler.LookupToken)
		r.Get("/market/mentions", marketHandler.Mentions)

		// Analysis runs call out to metered providers; keep them on a
		// tighter budget.
		analysisLimit := middleware.AnalysisRateLimiter(cfg.API.AnalysisRPM)
		r.With(analysisLimit).Post("/intelligence", intelligenceHandler.Analyze)
		r.Get("/intelligence/history", intelligenceHandler.History)

		r.With(analysisLimit).Get("/report", reportHandler.Build)
	})

	notifications.Publish(context.Background(), bus.Notification{
		Type:     entities.EventSystemStart,
		Severity: entities.SeverityInfo,
		Message:  "tokenwatch API started",
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Run server in goroutine
	go func() {
		logger.Info("API server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal, shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
