package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/user/bizscrape-service/internal/delivery/http/response"
	"go.uber.org/zap"
)

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response.HealthResponse{Status: "ok", Dependencies: map[string]string{}}
	for _, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			h.log.Error("Health check failed", zap.String("dependency", c.Name), zap.Error(err))
			resp.Dependencies[c.Name] = "unhealthy"
			resp.Status = "degraded"
			continue
		}
		resp.Dependencies[c.Name] = "healthy"
	}

	if resp.Status != "ok" {
		h.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}
