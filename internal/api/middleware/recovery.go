package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/osa911/glassesrelay/internal/api/constants"
	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 with the standard error body
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.GetLogger().Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.GetRealIP(c),
					c.GetString(constants.ContextKeyRequestID),
					rec,
					debug.Stack(),
				)

				c.Set(constants.ContextKeyErrorCode, common.ErrCodeInternalServer)
				utils.AbortWithError(c, http.StatusInternalServerError, common.MsgInternal)
			}
		}()

		c.Next()
	}
}
