package server

import (
	"log"

	"github.com/gin-gonic/gin"

	v1 "github.com/adamseriwarp/custom-reports/internal/api/v1"
	"github.com/adamseriwarp/custom-reports/internal/config"
	"github.com/adamseriwarp/custom-reports/internal/report"
	"github.com/adamseriwarp/custom-reports/internal/store"
)

// Server is the HTTP server wrapping the report API.
type Server struct {
	router *gin.Engine
	store  *store.Store
	v1     *v1.Handler
}

// NewServer opens the data store and wires the API routes.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := store.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	svc := report.NewService(st, cfg.Markets, cfg.Reports.WarehousePredicate())
	handler := v1.NewHandler(st, svc, cfg.Reports)

	s := &Server{
		router: gin.Default(),
		store:  st,
		v1:     handler,
	}

	s.setupRoutes()

	return s
}

// setupRoutes attaches CORS and the API group.
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}
}

// Run starts the listener.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the data store.
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore exposes the store for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
