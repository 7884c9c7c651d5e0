package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-match-backend/config"
	_ "go-match-backend/docs" // Important for Swagger
	"go-match-backend/internal/delivery/http/middleware"
	v1 "go-match-backend/internal/delivery/http/v1"
	"go-match-backend/internal/repository/postgres"
	"go-match-backend/internal/repository/rediscache"
	"go-match-backend/internal/repository/resilient"
	"go-match-backend/internal/usecase"
	"go-match-backend/pkg/auth"
	"go-match-backend/pkg/database"
	"go-match-backend/pkg/logger"
	"go-match-backend/pkg/redis"
	"go-match-backend/pkg/validation"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Match Scoring API
// @version         1.0
// @description     Candidate and job match scoring, ranking and shortlisting.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting match scoring service", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.New(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured - match cache disabled, rate limits are per instance")
	case err != nil:
		logger.Log.Warn("Redis unavailable - continuing without cache", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}

	// 5. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	embeddingRepo := resilient.NewEmbeddingRepository(
		postgres.NewEmbeddingRepository(dbPool),
		resilient.BreakerSettings{
			MaxRequests:  cfg.BreakerMaxRequests,
			Interval:     cfg.BreakerInterval,
			Timeout:      cfg.BreakerTimeout,
			MinRequests:  cfg.BreakerMinRequests,
			FailureRatio: cfg.BreakerFailureRatio,
		},
		logger.Log,
	)
	matchCache := rediscache.NewMatchCache(redisClient, cfg.MatchCacheTTL, logger.Log)

	// 6. Setup UseCases
	matchUC := usecase.NewMatchUsecase(
		jobRepo, candidateRepo, applicationRepo, embeddingRepo, matchCache,
		validation.New(), cfg.ScoringWorkers, cfg.MaxTopN,
	)

	checks := map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
		"redis":    nil,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if cfg.SupabaseUrl != "" {
		jwksProvider = auth.NewProvider(cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json")
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		MatchUC:      matchUC,
		HealthUC:     healthUC,
		RateLimiter:  middleware.NewRateLimiter(redisClient),
		JWKSProvider: jwksProvider,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
