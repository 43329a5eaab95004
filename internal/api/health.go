package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/drhelai/helai/internal/config"
)

// Version is reported by the health endpoint.
const Version = "2.0.0"

const pingTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status      string            `json:"status"`
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment string            `json:"environment"`
	Checks      map[string]string `json:"checks"`
}

// HealthHandler serves GET /api/health.
type HealthHandler struct {
	cfg        *config.Config
	transcript Pinger
}

// NewHealthHandler creates a health handler. transcript may be nil when the
// transcript store is disabled.
func NewHealthHandler(cfg *config.Config, transcript Pinger) *HealthHandler {
	return &HealthHandler{cfg: cfg, transcript: transcript}
}

// ServeHTTP reports service health. A failing transcript ping yields 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:      "healthy",
		Message:     "Dr. HelAI is running",
		Version:     Version,
		Timestamp:   time.Now().UTC(),
		Environment: h.cfg.AppEnv,
		Checks: map[string]string{
			"generator": "fallback",
		},
	}
	if h.cfg.HasAPIKey() {
		resp.Checks["generator"] = "gemini"
	}

	status := http.StatusOK
	switch {
	case h.transcript == nil:
		resp.Checks["transcript"] = "disabled"
	default:
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.transcript.Ping(ctx); err != nil {
			slog.Error("Health check: transcript unreachable", "error", err)
			resp.Status = "degraded"
			resp.Checks["transcript"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["transcript"] = "ok"
		}
	}

	JSON(w, status, resp)
}
