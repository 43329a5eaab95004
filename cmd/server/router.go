package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/drhelai/helai/internal/api"
	"github.com/drhelai/helai/internal/chat"
	"github.com/drhelai/helai/internal/config"
	"github.com/drhelai/helai/internal/feed"
	"github.com/drhelai/helai/internal/history"
	"github.com/drhelai/helai/internal/middleware"
	"github.com/drhelai/helai/internal/store"
	"github.com/drhelai/helai/web"
)

var allowedOrigins = []string{"*"}

// routerDeps are the handlers' shared collaborators. Transcript may be nil.
type routerDeps struct {
	cfg        *config.Config
	responder  *chat.Responder
	log        *history.Log
	hub        *feed.Hub
	transcript store.Repository
}

func newRouter(d routerDeps) http.Handler {
	// Keep nil interfaces nil when the transcript is disabled.
	var (
		pinger  api.Pinger
		counter api.Counter
	)
	if d.transcript != nil {
		pinger, counter = d.transcript, d.transcript
	}

	chatHandler := chat.NewHandler(d.responder, d.cfg)
	healthHandler := api.NewHealthHandler(d.cfg, pinger)
	monitorHandler := api.NewStressMonitorHandler(d.log, counter)
	wsHandler := feed.NewWebSocketHandler(d.hub, d.log)

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	// The chat handler answers every method itself (405 with Allow).
	r.With(middleware.CORS(allowedOrigins, http.MethodPost, http.MethodOptions)).
		Handle("/api/chat", chatHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(allowedOrigins, http.MethodGet, http.MethodOptions))

		r.Get("/api/health", healthHandler.ServeHTTP)
		r.Options("/api/health", noContent)
		r.Get("/api/stress-monitor", monitorHandler.ServeHTTP)
		r.Options("/api/stress-monitor", noContent)
		r.Get("/api/stress-monitor/ws", wsHandler.ServeHTTP)
	})

	// Serve embedded demo page.
	r.Handle("/*", web.Handler())

	return r
}

// noContent is never reached; CORS answers OPTIONS first.
func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
