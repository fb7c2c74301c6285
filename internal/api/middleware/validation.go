package middleware

import (
	"net/http"

	"github.com/osa911/glassesrelay/internal/api/constants"
	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/api/dto/v1/order"
	"github.com/osa911/glassesrelay/internal/api/validation"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxOrderBodyBytes caps the submission body
const maxOrderBodyBytes = 64 << 10

// ValidateOrderRequest binds the order body and stores it in the context.
// Any decode or presence failure is reported as missing fields.
func ValidateOrderRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxOrderBodyBytes)

		var req order.OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if fields := validation.MissingFields(err); len(fields) > 0 {
				logging.GetLogger().Debug("Order rejected, missing fields: %v", fields)
			}
			utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeValidation, common.MsgMissingFields)
			return
		}

		c.Set(constants.ContextKeyOrder, &req)
		c.Next()
	}
}
