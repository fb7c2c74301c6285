package routes

import (
	"github.com/osa911/glassesrelay/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// OrderPath is where the storefront posts the contact form
const OrderPath = "/send-to-telegram"

// SetupOrderRoutes configures the order relay route.
// Order matters: metrics see every outcome, and the cooldown check runs
// before the rate limit and the body so a marked client always gets the
// cooldown answer, whatever it sends.
func SetupOrderRoutes(router *gin.RouterGroup, order *handlers.OrderHandler, m *Middleware) {
	router.POST(OrderPath,
		m.Metrics,
		m.Cooldown,
		m.RateLimit,
		m.Validation,
		order.Submit,
	)
}
