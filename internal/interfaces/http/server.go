// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/Voidkillxx/FinalCaseStudy/internal/infrastructure/database/redis"
	"github.com/Voidkillxx/FinalCaseStudy/internal/interfaces/http/handlers"
	"github.com/Voidkillxx/FinalCaseStudy/internal/interfaces/http/middleware"
	"github.com/Voidkillxx/FinalCaseStudy/internal/interfaces/http/routes"
	"github.com/Voidkillxx/FinalCaseStudy/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	logger      *logrus.Logger
	gin         *gin.Engine
	httpServer  *http.Server
	redisClient *redis.Client
	sessions    *session.Manager
	receipts    handlers.ReceiptRenderer
	startedAt   time.Time
}

// NewServer creates a new HTTP server instance with its routes registered
func NewServer(cfg *config.Config, logger *logrus.Logger, redisClient *redis.Client, sessions *session.Manager, receipts handlers.ReceiptRenderer) *Server {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:      cfg,
		logger:      logger,
		gin:         gin.New(),
		redisClient: redisClient,
		sessions:    sessions,
		receipts:    receipts,
		startedAt:   time.Now(),
	}

	// Only trust forwarded client IPs from configured proxies
	if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		logger.WithError(err).Warn("Invalid trusted proxies, trusting none")
		_ = s.gin.SetTrustedProxies(nil)
	}

	// Setup middleware and routes
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"api_base": fmt.Sprintf("http://localhost:%s/api/v1", s.config.Server.Port),
		"backend":  s.config.Backend.BaseURL,
	}).Info("HTTP server starting")

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recover from panics
	s.gin.Use(gin.Recovery())

	// Request ID first so the access log can carry it
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))

	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders(s.config.App.Name))

	// Rate limiting needs Redis
	if s.redisClient != nil {
		s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.redisClient.GetClient(), s.logger))
	}
	// Deadline for backend calls made while serving a request
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	// Health checks (no session required)
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	// API v1 routes
	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, routes.Dependencies{
		Config:   s.config,
		Logger:   s.logger,
		Sessions: s.sessions,
		Receipts: s.receipts,
	})

	// Root endpoint lists the API in development
	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     s.config.App.Name,
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"sessions": "/api/v1/sessions",
					"nav":      "/api/v1/nav",
					"products": "/api/v1/products",
					"auth":     "/api/v1/auth",
					"cart":     "/api/v1/cart",
					"orders":   "/api/v1/orders",
				},
			})
		})
	}
}

// healthCheck reports whether the session store is reachable
func (s *Server) healthCheck(c *gin.Context) {
	if s.redisClient != nil {
		if err := s.redisClient.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "redis ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ready",
		"timestamp":       time.Now().UTC(),
		"uptime":          time.Since(s.startedAt).Round(time.Second).String(),
		"active_sessions": s.sessions.Active(),
	})
}
