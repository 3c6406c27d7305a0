package server

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/alkime/stylepost/internal/config"
	"github.com/alkime/stylepost/internal/metrics"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed web
var webFS embed.FS

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *slog.Logger
	router  *gin.Engine
	service Service
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, svc Service) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}
	// Development: no reverse proxy, uses direct client IP

	server := &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		service: svc,
	}

	// Setup middleware and routes
	router.Use(requestLogger(logger), metrics.Middleware())
	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the handler for tests and custom listeners.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		api.GET("/sample", s.handleSample)
		api.POST("/validate", s.handleValidate)
		api.POST("/posts", s.handlePost)
		api.POST("/workflow", s.handleWorkflow)
		api.POST("/topics", s.handleTopics)
		api.POST("/research", s.handleResearch)
	}

	// Embedded form UI; only answers for files that exist, so API routes fall through.
	fsys, err := static.EmbedFolder(webFS, "web")
	if err != nil {
		// The API still works without the form.
		s.logger.Error("Embedded form UI unavailable", "error", err)
		return
	}
	s.router.Use(static.Serve("/", fsys))
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylepost",
	})
}
