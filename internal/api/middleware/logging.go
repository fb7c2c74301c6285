package middleware

import (
	"time"

	"github.com/osa911/glassesrelay/internal/api/constants"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the application logger.
// The logger itself drops the line unless request logging is enabled.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
