package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/shiftcheck/backend/api/transport"
	"github.com/shiftcheck/backend/internal/infrastructure/monitor"
	"github.com/shiftcheck/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"status":     overall(status),
		"checked_at": status.LastCheck.UTC(),
		"timestamp":  time.Now().UTC(),
		"services": map[string]string{
			"postgresql": upDown(status.PostgreSQL),
			"redis":      upDown(status.Redis),
		},
	}

	if status.PostgreSQL && status.Redis {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "dependencies unhealthy", payload))
}

func overall(s monitor.Status) string {
	if s.PostgreSQL && s.Redis {
		return "ok"
	}
	return "degraded"
}

func upDown(healthy bool) string {
	if healthy {
		return "up"
	}
	return "down"
}
