package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drhelai/helai/internal/domain"
	"github.com/drhelai/helai/internal/history"
)

type stubCounter struct {
	n   int64
	err error
}

func (c stubCounter) CountTurns(context.Context) (int64, error) { return c.n, c.err }

func serveMonitor(t *testing.T, h http.Handler) map[string]any {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stress-monitor", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestStressMonitor_EmptyLog(t *testing.T) {
	body := serveMonitor(t, NewStressMonitorHandler(history.NewLog(10), nil))

	assert.Equal(t, "success", body["status"])
	assert.EqualValues(t, 5, body["current_stress"])
	assert.Equal(t, "stable", body["trend"])
	assert.Equal(t, []any{}, body["stress_history"])
	assert.NotContains(t, body, "average_stress")
	assert.NotContains(t, body, "sessions_count")
}

func TestStressMonitor_Aggregates(t *testing.T) {
	log := history.NewLog(100)
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, level := range []int{2, 4, 9, 5} {
		log.Append(domain.ChatTurn{StressLevel: level, Timestamp: at.Add(time.Duration(i) * time.Minute)})
	}

	body := serveMonitor(t, NewStressMonitorHandler(log, nil))

	assert.EqualValues(t, 5, body["current_stress"])
	assert.Equal(t, "decreasing", body["trend"])
	assert.EqualValues(t, 5, body["average_stress"])
	assert.EqualValues(t, 9, body["peak_stress"])
	assert.EqualValues(t, 4, body["sessions_count"])
	assert.Equal(t, "2025-06-01T08:03:00Z", body["last_updated"])
}

func TestStressMonitor_SessionsCountFromTranscript(t *testing.T) {
	log := history.NewLog(2)
	for _, level := range []int{3, 3, 3} {
		log.Append(domain.ChatTurn{StressLevel: level})
	}

	body := serveMonitor(t, NewStressMonitorHandler(log, stubCounter{n: 3}))
	assert.EqualValues(t, 3, body["sessions_count"])

	body = serveMonitor(t, NewStressMonitorHandler(log, stubCounter{err: errors.New("closed")}))
	assert.EqualValues(t, 2, body["sessions_count"])
}
