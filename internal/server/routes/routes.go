package routes

import (
	"github.com/osa911/glassesrelay/internal/api/handlers"
	"github.com/osa911/glassesrelay/internal/api/middleware"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/observability/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	// Only POST is routed; other methods on known paths get 405
	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)

	SetupHealthRoutes(router, h.Health)
	SetupMetricsRoutes(router, h.Metrics)

	api := router.Group("/api")
	SetupOrderRoutes(api, h.Order, m)

	logging.GetLogger().Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, cors middleware.CORSConfig) {
	router.Use(middleware.Recovery())
	router.Use(middleware.ClientIP())
	router.Use(otelgin.Middleware(tracing.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cors))
	router.Use(middleware.SecurityHeaders())
}
