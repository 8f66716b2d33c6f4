package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/landmark-service/internal/config"
	"github.com/landmark-service/internal/delivery/http/handler"
	"github.com/landmark-service/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP server built on Fiber.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	landmarkHandler *handler.LandmarkHandler
	rateLimiter     *middleware.RateLimiter
}

// NewServer - creates a new HTTP server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	landmarkHandler *handler.LandmarkHandler,
	rateLimiter *middleware.RateLimiter,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Landmark Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		// ProxyHeader decides what c.IP() reports, and with it the rate
		// limit key for proxied deployments.
		ProxyHeader:  cfg.RateLimit.ProxyHeader,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		landmarkHandler: landmarkHandler,
		rateLimiter:     rateLimiter,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - middleware configuration.
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - route configuration.
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Landmark routes: both gated by the per-client rate limiter.
	// The literal /search route must register before the :pageid param.
	landmarks := api.Group("/landmarks", s.rateLimiter.Handle())
	landmarks.Get("/search", s.landmarkHandler.Search)
	landmarks.Get("/:pageid", s.landmarkHandler.Detail)
}

// Start - starts the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	s.rateLimiter.Stop()
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler - fallback for errors escaping the handlers.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error":   "INTERNAL_SERVER_ERROR",
			"message": err.Error(),
		})
	}
}
