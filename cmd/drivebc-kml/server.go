package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bcroads/drivebc-kml/config"
	"github.com/bcroads/drivebc-kml/pipeline"
)

// runServer regenerates the document on an interval and serves the
// latest bytes over HTTP. Serve-mode output is in-memory only; use
// oneshot mode for file export.
func runServer(p *pipeline.Pipeline, cfg config.AppConfig, logger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var latest atomic.Value // []byte

	refresh := func() {
		out, _, err := p.Generate(ctx)
		if err != nil {
			logger.Error("refresh failed", "error", err)
			return
		}
		latest.Store(out)
	}
	refresh()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /drivebc.kml", func(w http.ResponseWriter, r *http.Request) {
		data, _ := latest.Load().([]byte)
		if len(data) == 0 {
			http.Error(w, "document not ready", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
		_, _ = w.Write(data)
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := p.CheckReadiness(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	interval := time.Duration(cfg.Server.RefreshIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			refresh()
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown error", "error", err)
			}
			return
		}
	}
}
