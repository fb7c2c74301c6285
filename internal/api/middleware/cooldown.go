package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/osa911/glassesrelay/internal/api/constants"
	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/cooldown"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/observability/metrics"
	"github.com/osa911/glassesrelay/internal/service"
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// Cooldown rejects clients whose marker is still valid, before the body is read.
// A guard error lets the request through. A slot reserved by the check is
// released unless the handler reports the order as relayed.
func Cooldown(guard cooldown.Guard, m *metrics.RelayMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		dec, err := guard.Check(c.Request)
		if err != nil {
			logging.GetLogger().Warn("Cooldown check failed (%s, allowed=%t): %v", guard.Mode(), dec.Allowed, err)
		}
		m.ObserveCooldown(guard.Mode(), dec.Allowed)

		if !dec.Allowed {
			if dec.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(dec.RetryAfter.Seconds()))))
			}
			utils.HandleAPIError(c, service.ErrRateLimited, http.StatusTooManyRequests, common.ErrCodeTooManyRequests, common.MsgCooldown)
			return
		}

		defer func() {
			if c.GetBool(constants.ContextKeyRelayed) {
				return
			}
			if err := guard.Release(c.Request); err != nil {
				logging.GetLogger().Warn("Failed to release cooldown (%s): %v", guard.Mode(), err)
			}
		}()

		c.Next()
	}
}
