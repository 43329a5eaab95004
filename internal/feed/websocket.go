package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/drhelai/helai/internal/history"
)

const writeTimeout = 5 * time.Second

// SummarySource provides the stress summary sent to new clients.
type SummarySource interface {
	Summary() history.Summary
}

// WebSocketHandler streams feed events to WebSocket clients.
type WebSocketHandler struct {
	hub    *Hub
	source SummarySource
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(hub *Hub, source SummarySource) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, source: source}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "request_id", reqID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "feed ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "request_id", reqID)
		}
	}()

	// Subscribe before the snapshot so no turn falls between the two.
	events, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	// The feed is one-way; CloseRead discards client frames and cancels ctx
	// when the peer goes away.
	ctx := ws.CloseRead(r.Context())

	slog.Info("Stress feed client connected", "request_id", reqID, "ip", r.RemoteAddr)
	defer slog.Info("Stress feed client disconnected", "request_id", reqID)

	if err := h.write(ctx, ws, SnapshotEvent(h.source.Summary(), time.Now())); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := h.write(ctx, ws, ev); err != nil {
				return
			}
		}
	}
}

func (h *WebSocketHandler) write(ctx context.Context, ws *websocket.Conn, ev Event) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := wsjson.Write(ctx, ws, ev); err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Debug("WebSocket write error", "error", err, "type", ev.Type)
		}
		return err
	}
	return nil
}
