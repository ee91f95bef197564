package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adityakhanna/shopwise/internal/adapters/cache"
	"github.com/adityakhanna/shopwise/internal/adapters/database"
	"github.com/adityakhanna/shopwise/internal/adapters/events"
	"github.com/adityakhanna/shopwise/internal/adapters/extraction"
	"github.com/adityakhanna/shopwise/internal/adapters/search"
	"github.com/adityakhanna/shopwise/internal/api/handlers"
	"github.com/adityakhanna/shopwise/internal/api/routes"
	"github.com/adityakhanna/shopwise/internal/application/services"
	"github.com/adityakhanna/shopwise/internal/domain/providers"
	"github.com/adityakhanna/shopwise/internal/domain/repositories"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/openai"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/postgres"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/redis"
	"github.com/adityakhanna/shopwise/internal/infrastructure/clients/typesense"
	"github.com/adityakhanna/shopwise/internal/infrastructure/observability"
	"github.com/adityakhanna/shopwise/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	observability.InitLogger(cfg.OTEL.ServiceName, env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The application works without it, just
	// without caching and analytics events.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize Typesense client for review search
	var reviewRepo repositories.ReviewSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, review search disabled")
	} else {
		reviewRepo = search.NewTypesenseReviewAdapter(typesenseClient)
		log.Info().Msg("Typesense client initialized")
	}

	// Catalog adapter, wrapped with caching when Redis is available
	catalogRepo := database.NewCatalogAdapter(pgClient)
	if cacheProvider != nil {
		catalogRepo = database.NewCachedCatalogAdapter(catalogRepo, cacheProvider)
		log.Info().Msg("catalog adapter wrapped with caching layer")
	}

	// Product name extraction: model-backed when configured, with a
	// rule-based fallback either way
	var extractor providers.EntityExtractor = extraction.NewRuleExtractor()
	if cfg.OpenAI.APIKey != "" {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize OpenAI client, using rule-based extraction")
		} else {
			defer openaiClient.Close()
			extractor = extraction.NewFallbackExtractor(openaiClient, extraction.NewRuleExtractor())
			log.Info().Msg("OpenAI extraction initialized")
		}
	}

	// Application services
	classifier := services.NewIntentClassifier()
	catalogSpecialist := services.NewCatalogSpecialist(catalogRepo)
	filterSpecialist := services.NewFilterSpecialist(catalogRepo)
	reviewSpecialist := services.NewReviewSpecialist(catalogRepo, reviewRepo)
	compareSpecialist := services.NewCompareSpecialist(catalogRepo, extractor)

	orchestrator := services.NewOrchestrator(
		classifier,
		catalogSpecialist,
		filterSpecialist,
		reviewSpecialist,
		compareSpecialist,
		eventBus,
		metrics,
	)
	browseService := services.NewBrowseService(catalogRepo)

	var statsHandler *handlers.StatsHandler
	if eventBus != nil {
		analytics := services.NewAnalyticsService(eventBus)
		if err := analytics.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to start analytics consumer")
		} else {
			statsHandler = handlers.NewStatsHandler(analytics)
		}
	}

	// HTTP layer
	queryHandler := handlers.NewQueryHandler(orchestrator)
	browseHandler := handlers.NewBrowseHandler(browseService, compareSpecialist)

	router := routes.NewRouter(queryHandler, browseHandler, statsHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
