package middleware

import (
	"github.com/osa911/glassesrelay/internal/observability/metrics"
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// SubmissionMetrics counts every relay attempt by the error code it ended with
func SubmissionMetrics(m *metrics.RelayMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		outcome := "success"
		if code, ok := utils.ErrorCodeFrom(c); ok {
			outcome = string(code)
		}
		m.ObserveSubmission(outcome)
	}
}
