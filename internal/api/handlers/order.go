package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/osa911/glassesrelay/internal/api/constants"
	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/api/dto/v1/order"
	"github.com/osa911/glassesrelay/internal/api/sanitization"
	"github.com/osa911/glassesrelay/internal/cooldown"
	"github.com/osa911/glassesrelay/internal/logging"
	"github.com/osa911/glassesrelay/internal/service"
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// OrderRelay submits an order to the messaging channel
type OrderRelay interface {
	Submit(ctx context.Context, sub service.Submission) error
}

type OrderHandler struct {
	relay OrderRelay
	guard cooldown.Guard
}

func NewOrderHandler(relay OrderRelay, guard cooldown.Guard) *OrderHandler {
	return &OrderHandler{
		relay: relay,
		guard: guard,
	}
}

func (h *OrderHandler) Submit(c *gin.Context) {
	// Get order data from context (set by validation middleware)
	orderData, exists := c.Get(constants.ContextKeyOrder)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Order data not found in context")
		return
	}

	req, ok := orderData.(*order.OrderRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid order data format")
		return
	}

	sub := service.Submission{
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	}

	if err := h.relay.Submit(c.Request.Context(), sub); err != nil {
		h.handleRelayError(c, err)
		return
	}

	c.Set(constants.ContextKeyRelayed, true)

	// The response is already a success; a lost marker only weakens the cooldown
	if err := h.guard.Commit(c.Writer, c.Request); err != nil {
		logging.GetLogger().Warn("Failed to record cooldown (%s): %v", h.guard.Mode(), err)
	}

	logging.GetLogger().Info("Order relayed: name=%q phone=%s ip=%s",
		sanitization.ForLog(sub.Name),
		sanitization.MaskPhone(sub.Phone),
		utils.GetRealIP(c),
	)

	utils.HandleSuccess(c, order.OrderResponse{Success: true})
}

func (h *OrderHandler) handleRelayError(c *gin.Context, err error) {
	var downstream *service.DownstreamError
	switch {
	case errors.Is(err, service.ErrValidation):
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeValidation, common.MsgMissingFields)
	case errors.As(err, &downstream):
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeDownstream, downstream.Error())
	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, err.Error())
	}
}

// MethodNotAllowed answers requests whose path exists under another method
func MethodNotAllowed(c *gin.Context) {
	utils.HandleAPIError(c, service.ErrMethodNotAllowed, http.StatusMethodNotAllowed, common.ErrCodeMethodNotAllowed, common.MsgMethodNotAllowed)
}
