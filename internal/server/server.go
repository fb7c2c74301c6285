package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/glassesrelay/internal/api/handlers"
	"github.com/osa911/glassesrelay/internal/api/middleware"
	"github.com/osa911/glassesrelay/internal/api/validation"
	"github.com/osa911/glassesrelay/internal/config"
	"github.com/osa911/glassesrelay/internal/cooldown"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/observability/metrics"
	"github.com/osa911/glassesrelay/internal/server/routes"
	"github.com/osa911/glassesrelay/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the collaborators built by main.
// Store and Metrics are optional; MetricsHandler serves /metrics when set.
type Dependencies struct {
	Sender         service.MessageSender
	Guard          cooldown.Guard
	Store          handlers.Pinger
	Metrics        *metrics.RelayMetrics
	MetricsHandler http.Handler
}

// Server represents the HTTP server
type Server struct {
	router      *gin.Engine
	cfg         *config.Config
	rateLimiter *middleware.RateLimiter
}

// NewServer creates a server with every route wired
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Sender == nil {
		return nil, errors.New("server: message sender is required")
	}
	if deps.Guard == nil {
		deps.Guard = cooldown.NoopGuard{}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	validation.RegisterValidators()

	router := gin.New()
	logger := logging.GetLogger()

	// Forwarding headers are only believed from configured proxies
	router.RemoteIPHeaders = []string{"X-Real-IP", "X-Forwarded-For"}
	if err := router.SetTrustedProxies(cfg.Proxies()); err != nil {
		return nil, fmt.Errorf("server: invalid trusted proxies: %w", err)
	}

	routes.SetupGlobalMiddleware(router, logger, middleware.CORSConfig{
		AllowedOrigins: cfg.Origins(),
		Development:    !cfg.IsProduction() && len(cfg.Origins()) == 0,
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})

	relay := service.NewRelayService(deps.Sender)

	h := &routes.Handlers{
		Order:   handlers.NewOrderHandler(relay, deps.Guard),
		Health:  handlers.NewHealthHandler(deps.Guard.Mode(), deps.Store),
		Metrics: deps.MetricsHandler,
	}
	m := &routes.Middleware{
		RateLimit:  rateLimiter.Middleware(),
		Cooldown:   middleware.Cooldown(deps.Guard, deps.Metrics),
		Validation: middleware.ValidateOrderRequest(),
		Metrics:    middleware.SubmissionMetrics(deps.Metrics),
	}
	routes.Setup(router, h, m)

	return &Server{
		router:      router,
		cfg:         cfg,
		rateLimiter: rateLimiter,
	}, nil
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Start(ctx context.Context) error {
	logger := logging.GetLogger()

	s.rateLimiter.StartJanitor(ctx, 2*time.Minute)

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Relay listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down relay")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
