package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/geo-region-service/pkg/response"
)

// ReadinessCheck pings one backing service.
type ReadinessCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	Checks  []ReadinessCheck
	Timeout time.Duration
}

func NewHealthHandler(timeout time.Duration, checks ...ReadinessCheck) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{Checks: checks, Timeout: timeout}
}

// Live GET /healthz
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, "ok", gin.H{"status": "up"})
}

// Ready GET /readyz reports every failing dependency by name.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	failed := map[string]string{}
	for _, chk := range h.Checks {
		if err := chk.Ping(ctx); err != nil {
			_ = c.Error(err)
			failed[chk.Name] = "down"
		}
	}
	if len(failed) > 0 {
		response.Error(c, http.StatusServiceUnavailable, "NOT_READY", "Service not ready", failed)
		return
	}
	response.Success(c, http.StatusOK, "ready", gin.H{"status": "ready"})
}
