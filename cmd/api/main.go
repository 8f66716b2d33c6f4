package main

// @title Landmark Service API
// @version 1.0.0
// @description Map-based landmark discovery service. Given a viewport center and radius it queries an encyclopedia geosearch API for nearby landmarks and serves per-landmark detail panels (intro extract, thumbnail, canonical URL).
// @description
// @description Features:
// @description - Landmark search around a coordinate, upstream ranking preserved
// @description - Lazy per-landmark detail with short-TTL response caching
// @description - Fixed-window per-client rate limiting on all landmark endpoints

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/landmark-service/docs"
	"github.com/landmark-service/internal/config"
	httpDelivery "github.com/landmark-service/internal/delivery/http"
	"github.com/landmark-service/internal/delivery/http/handler"
	"github.com/landmark-service/internal/delivery/http/middleware"
	"github.com/landmark-service/internal/infrastructure/wikipedia"
	"github.com/landmark-service/internal/pkg/logger"
	"github.com/landmark-service/internal/repository/cache"
	"github.com/landmark-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Landmark Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 4. Health check
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 5. Initialize repositories
	landmarkRepo := wikipedia.NewClient(&cfg.Upstream, log)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 6. Initialize use cases
	landmarkUC := usecase.NewLandmarkUseCase(
		landmarkRepo,
		cacheRepo,
		log,
		cfg.Cache.SearchCacheTTL,
		cfg.Cache.DetailCacheTTL,
	)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP handlers and rate limiter
	landmarkHandler := handler.NewLandmarkHandler(landmarkUC, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	rateLimiter.StartSweeper(cfg.RateLimit.SweepInterval)

	log.Info("HTTP handlers initialized")

	// 8. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		landmarkHandler,
		rateLimiter,
	)

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
