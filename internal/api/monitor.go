package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/drhelai/helai/internal/domain"
	"github.com/drhelai/helai/internal/history"
)

// Counter reports how many turns the transcript holds.
type Counter interface {
	CountTurns(ctx context.Context) (int64, error)
}

// StressMonitorResponse is the body of GET /api/stress-monitor. The
// aggregate fields are omitted when no turn has been logged.
type StressMonitorResponse struct {
	Status        string       `json:"status"`
	CurrentStress int          `json:"current_stress"`
	Trend         domain.Trend `json:"trend"`
	LastUpdated   time.Time    `json:"last_updated"`
	AverageStress *float64     `json:"average_stress,omitempty"`
	PeakStress    *int         `json:"peak_stress,omitempty"`
	SessionsCount *int64       `json:"sessions_count,omitempty"`
	StressHistory []int        `json:"stress_history"`
}

// StressMonitorHandler serves GET /api/stress-monitor.
type StressMonitorHandler struct {
	log        *history.Log
	transcript Counter
}

// NewStressMonitorHandler creates the monitor handler. sessions_count is the
// larger of the log length and the transcript row count; transcript may be nil.
func NewStressMonitorHandler(log *history.Log, transcript Counter) *StressMonitorHandler {
	return &StressMonitorHandler{log: log, transcript: transcript}
}

// ServeHTTP reports stress over the most recent turns.
func (h *StressMonitorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := h.log.Summary()

	resp := StressMonitorResponse{
		Status:        "success",
		CurrentStress: s.Current,
		Trend:         s.Trend,
		LastUpdated:   s.LastUpdated,
		StressHistory: s.Levels,
	}
	if s.Empty {
		resp.LastUpdated = time.Now().UTC()
		JSON(w, http.StatusOK, resp)
		return
	}

	count := int64(h.log.Len())
	if h.transcript != nil {
		n, err := h.transcript.CountTurns(r.Context())
		if err != nil {
			slog.Warn("Stress monitor: transcript count failed, using log length", "error", err)
		} else if n > count {
			// The transcript outlives log eviction but not retention pruning.
			count = n
		}
	}

	resp.AverageStress = &s.Average
	resp.PeakStress = &s.Peak
	resp.SessionsCount = &count
	JSON(w, http.StatusOK, resp)
}
