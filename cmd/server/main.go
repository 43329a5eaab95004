// Dr. HelAI - supportive chat server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/drhelai/helai/internal/chat"
	"github.com/drhelai/helai/internal/config"
	"github.com/drhelai/helai/internal/fallback"
	"github.com/drhelai/helai/internal/feed"
	"github.com/drhelai/helai/internal/generator"
	"github.com/drhelai/helai/internal/history"
	"github.com/drhelai/helai/internal/lexicon"
	"github.com/drhelai/helai/internal/retention"
	"github.com/drhelai/helai/internal/store"
	"github.com/drhelai/helai/internal/stress"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped successfully")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	slog.Info("Starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"generator_configured", cfg.HasAPIKey(),
		"transcript_enabled", cfg.Transcript.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lex, err := lexicon.LoadOrDefault(cfg.LexiconPath)
	if err != nil {
		return err
	}

	gen, err := generator.New(ctx, cfg.Gemini, logger)
	if err != nil {
		return err
	}
	if !cfg.HasAPIKey() {
		slog.Info("GEMINI_API_KEY not set, replies will use fallback text")
	}

	// Initialize dependencies.
	var transcript store.Repository
	if cfg.Transcript.Enabled {
		repo, err := store.NewSQLite()
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := repo.Close(); closeErr != nil {
				slog.Error("Failed to close transcript", "error", closeErr)
			}
		}()
		transcript = repo
		slog.Info("Transcript store ready", "retention", cfg.Transcript.Retention)
	}

	convLog := history.NewLog(cfg.History.Capacity)
	hub := feed.NewHub()

	responder := chat.NewResponder(chat.Deps{
		Generator:  gen,
		Fallback:   fallback.NewResponder(lex, fallback.NewRand(cfg.History.FallbackSeed)),
		Analyzer:   stress.NewAnalyzer(lex),
		Log:        convLog,
		Transcript: transcript,
		Publisher:  hub,
		Logger:     logger,
	})

	// WriteTimeout stays 0: the stress feed holds WebSocket connections open.
	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: newRouter(routerDeps{
			cfg:        cfg,
			responder:  responder,
			log:        convLog,
			hub:        hub,
			transcript: transcript,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if transcript != nil {
		done := retention.StartWorker(gctx, transcript, cfg.Transcript.Retention, cfg.Transcript.SweepInterval, nil)
		g.Go(func() error {
			<-done
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")

		// Hijacked feed connections are not tracked by Shutdown.
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
