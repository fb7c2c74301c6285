package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/utils"
	"github.com/osa911/glassesrelay/internal/version"

	"github.com/gin-gonic/gin"
)

// Pinger checks a backing store, e.g. the Redis client in redis cooldown mode
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	cooldownMode string
	store        Pinger
}

// NewHealthHandler creates a health handler; store may be nil
func NewHealthHandler(cooldownMode string, store Pinger) *HealthHandler {
	return &HealthHandler{cooldownMode: cooldownMode, store: store}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			utils.HandleAPIError(c, err, http.StatusServiceUnavailable, common.ErrCodeUnavailable, "Cooldown store unavailable")
			return
		}
	}

	utils.HandleSuccess(c, common.HealthResponse{
		Status:       "ok",
		Version:      version.Version,
		CooldownMode: h.cooldownMode,
	})
}
