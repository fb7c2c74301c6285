package routes

import (
	"net/http"

	"github.com/osa911/glassesrelay/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers contains all the route handlers
type Handlers struct {
	Order   *handlers.OrderHandler
	Health  *handlers.HealthHandler
	Metrics http.Handler // nil disables /metrics
}

// Middleware contains the per-route middleware
type Middleware struct {
	RateLimit  gin.HandlerFunc
	Cooldown   gin.HandlerFunc
	Validation gin.HandlerFunc
	Metrics    gin.HandlerFunc
}
