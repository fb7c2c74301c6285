package middleware

import (
	"github.com/osa911/glassesrelay/internal/api/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RequestID propagates X-Request-ID or assigns a new one.
// The ID is also recorded on the request span started by otelgin.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		trace.SpanFromContext(c.Request.Context()).SetAttributes(attribute.String("http.request_id", requestID))

		c.Next()
	}
}
