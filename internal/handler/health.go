package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler answers load balancer probes.  The service is healthy
// without Redis; the redis field only tells operators whether the cache
// and rate limiter are active.
type HealthHandler struct {
	Redis *redis.Client // nil when Redis is not configured
}

// Health returns 200 with {"status":"ok","redis":"up|down|disabled"}.
func (h *HealthHandler) Health(c echo.Context) error {
	state := "disabled"
	if h.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
		defer cancel()
		state = "up"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			state = "down"
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "redis": state})
}
