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

	"beakers-site/pkg/config"
	"beakers-site/pkg/handlers"
	"beakers-site/pkg/services"

	"github.com/gin-contrib/sessions/cookie"
)

func main() {
	config.Init()

	if err := services.EnsureRepo(); err != nil {
		slog.Error("content repository unavailable", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := services.NewGeminiGenerator(ctx, config.GeminiAPIKey, config.GeminiModel)
	switch {
	case err == nil:
		handlers.Generator = gen
	case errors.Is(err, services.ErrGeneratorDisabled):
		slog.Info("GEMINI_API_KEY not set, question generation disabled")
	default:
		slog.Error("question generator unavailable", "error", err)
	}

	if config.SyncSchedule != "" {
		scheduler, err := services.StartSyncScheduler(config.SyncSchedule)
		if err != nil {
			slog.Error("sync scheduler not started", "error", err)
			os.Exit(1)
		}
		defer scheduler.Stop()
	}

	store := cookie.NewStore(config.SessionSecret())
	srv := &http.Server{
		Addr:    config.ListenAddr,
		Handler: handlers.NewRouter(store),
	}

	go func() {
		slog.Info("starting HTTP server", "address", config.ListenAddr, "articles", config.ArticlesDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
