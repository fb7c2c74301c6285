package middleware

import (
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// ClientIP resolves the client address once, through gin's trusted proxy
// rules, and stores it on the request context for guards that only see *http.Request
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(utils.WithClientIP(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}
