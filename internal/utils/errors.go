package utils

import (
	"github.com/osa911/glassesrelay/internal/api/constants"
	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs a failed request and answers with {"error": message}.
// The code is recorded on the context for the request logger and metrics.
func HandleAPIError(c *gin.Context, err error, status int, code common.ErrorCode, message string) {
	logging.GetLogger().LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		string(code)+" "+message,
		err,
	)

	c.Set(constants.ContextKeyErrorCode, code)
	AbortWithError(c, status, message)
}

// ErrorCodeFrom returns the error code recorded by HandleAPIError, if any
func ErrorCodeFrom(c *gin.Context) (common.ErrorCode, bool) {
	v, ok := c.Get(constants.ContextKeyErrorCode)
	if !ok {
		return "", false
	}
	code, ok := v.(common.ErrorCode)
	return code, ok
}
