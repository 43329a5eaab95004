package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/drhelai/helai/internal/api"
	"github.com/drhelai/helai/internal/config"
)

const defaultMaxRequestBodySize = 1 << 20

// Request is the body of POST /api/chat.
type Request struct {
	Message string `json:"message"`
}

// Handler serves /api/chat.
type Handler struct {
	responder   *Responder
	maxBodySize int64
	debug       *Debug
}

// NewHandler creates the chat handler. Error bodies carry a debug object
// unless cfg is production.
func NewHandler(responder *Responder, cfg *config.Config) *Handler {
	h := &Handler{responder: responder, maxBodySize: defaultMaxRequestBodySize}
	if cfg == nil {
		return h
	}
	if cfg.MaxRequestBodySize > 0 {
		h.maxBodySize = cfg.MaxRequestBodySize
	}
	if !cfg.IsProduction() {
		h.debug = &Debug{HasAPIKey: cfg.HasAPIKey(), Environment: cfg.AppEnv}
	}
	return h
}

// ServeHTTP dispatches on method: POST chats, OPTIONS is a bare 200 and
// anything else is 405.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.chat(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = fmt.Fprintf(w, "Method %s Not Allowed", r.Method)
	}
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	reqID := chiMiddleware.GetReqID(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := h.responder.Respond(r.Context(), req.Message)
	if err != nil {
		var validation *ValidationError
		if errors.As(err, &validation) {
			api.Error(w, http.StatusBadRequest, validation.Message)
			return
		}

		slog.Error("Chat request failed", "error", err, "request_id", reqID)
		api.JSON(w, http.StatusInternalServerError, NewErrorResponse(err, h.debug, time.Now()))
		return
	}

	api.JSON(w, http.StatusOK, NewResponse(reply))
}
