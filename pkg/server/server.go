// Package server exposes the engine over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/soundprediction/strata"
	"github.com/soundprediction/strata/pkg/config"
	"github.com/soundprediction/strata/pkg/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	engine strata.Strata
	server *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, engine strata.Strata) *Server {
	return &Server{
		config: cfg,
		engine: engine,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	gin.SetMode(s.config.Server.Mode)

	s.router = gin.New()
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(requestIDMiddleware())

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// Router returns the configured router. Setup must run first.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.engine)
	queryHandler := handlers.NewQueryHandler(s.engine)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/query", queryHandler.Query)
		v1.POST("/rebuild", queryHandler.Rebuild)
		v1.GET("/stats", healthHandler.Stats)
	}
}

// Start starts the server
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware assigns each request a uuid, echoed in responses.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
