// Package main is the entry point for the digest preview server.
//
// It loads configuration, builds the renderer with the configured CSS
// inlining flag and serves the preview routes (GET /healthz, GET /preview,
// POST /render, GET /theme) on SERVER_PORT.
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"paperboy/internal/config"
	"paperboy/internal/preview"
	"paperboy/internal/render"
	"paperboy/internal/types"
)

// slogAdapter wraps *slog.Logger to implement the types.Logger interface.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *slogAdapter) With(args ...any) types.Logger {
	return &slogAdapter{logger: a.logger.With(args...)}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel).With("service", cfg.Service, "version", cfg.Build.Version)

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Error("failed to build preview server", "error", err)
		os.Exit(1)
	}

	if err := runHTTPServer(srv, cfg, logger); err != nil {
		logger.Error("preview server exited with error", "error", err)
		os.Exit(1)
	}
}

// newServer wires the renderer and the template health probe.
func newServer(cfg *config.Config, logger *slog.Logger) (*preview.Server, error) {
	renderer := render.NewRenderer(render.RendererConfig{
		InlineCSS: cfg.Email.InlineCSS,
		Logger:    &slogAdapter{logger: logger},
	})

	return preview.NewServer(preview.Config{
		Renderer:     renderer,
		Logger:       logger,
		FallbackHTML: cfg.Email.FallbackHTML,
		HealthProbes: []preview.HealthProbe{preview.TemplateProbe{}},
	})
}

// runHTTPServer serves until SIGINT or SIGTERM, then shuts down gracefully.
func runHTTPServer(srv *preview.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("preview server listening", "addr", addr, "inline_css", cfg.Email.InlineCSS, "build", cfg.Build.String())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured JSON logger at the given level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
