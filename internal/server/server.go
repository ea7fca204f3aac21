// Package server wires configuration, providers, middleware and routes
// into a runnable HTTP service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/boxfs/boxfs/internal/api/http"
	"github.com/boxfs/boxfs/internal/api/middleware"
	"github.com/boxfs/boxfs/internal/config"
	"github.com/boxfs/boxfs/internal/logging"
	"github.com/boxfs/boxfs/internal/monitoring"
	"github.com/boxfs/boxfs/internal/providers/ai"
	"github.com/boxfs/boxfs/internal/providers/filesystem"
	"github.com/boxfs/boxfs/internal/providers/shell"
	"github.com/boxfs/boxfs/internal/sandbox"
	"github.com/boxfs/boxfs/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *service.Registry
	box      *sandbox.Sandbox
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// New creates a server instance from configuration.
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	box, err := sandbox.New(cfg.Sandbox, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sandbox: %w", err)
	}

	registry := service.NewRegistry()
	if err := registerProviders(registry, cfg, box, log); err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	handlers := apihttp.NewHandlers(registry, metrics, log)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/tools", handlers.ListTools)
	router.POST("/tools/discover", handlers.DiscoverTools)
	router.POST("/tools/execute", handlers.ExecuteTool)
	router.GET("/stats", handlers.Stats)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	return &Server{
		router: router,
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: registry,
		box:      box,
		metrics:  metrics,
		log:      log,
	}, nil
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	s.log.Info("starting server",
		zap.String("addr", s.http.Addr),
		zap.String("sandbox_root", s.box.Root()),
	)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.http.Shutdown(ctx)
}

// Registry exposes the service registry, used by tests.
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Router exposes the gin engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func registerProviders(registry *service.Registry, cfg *config.Config, box *sandbox.Sandbox, log *logging.Logger) error {
	fsProvider := filesystem.NewProvider(box)
	if err := registry.Register(fsProvider); err != nil {
		return fmt.Errorf("failed to register filesystem provider: %w", err)
	}
	log.Info("registered service", zap.String("service", "filesystem"))

	executor := shell.NewExecutor(box, time.Duration(cfg.Shell.TimeoutSeconds)*time.Second)
	if err := registry.Register(shell.NewProvider(executor)); err != nil {
		return fmt.Errorf("failed to register shell provider: %w", err)
	}
	log.Info("registered service", zap.String("service", "shell"))

	if cfg.AI.BaseURL != "" {
		client := ai.NewClient(cfg.AI)
		if err := registry.Register(ai.NewProvider(client)); err != nil {
			return fmt.Errorf("failed to register ai provider: %w", err)
		}
		log.Info("registered service", zap.String("service", "ai"))
	}

	return nil
}
