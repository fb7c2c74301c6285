package routes

import (
	"net/http"

	"github.com/osa911/glassesrelay/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
}

// SetupMetricsRoutes exposes Prometheus metrics when a handler is provided
func SetupMetricsRoutes(router *gin.Engine, metrics http.Handler) {
	if metrics == nil {
		return
	}
	router.GET("/metrics", gin.WrapH(metrics))
}
