package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillpath-backend/internal/bootstrap"
	"skillpath-backend/internal/catalog"
	"skillpath-backend/internal/shared/config"
	"skillpath-backend/internal/shared/server"
	"skillpath-backend/internal/shared/telemetry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	if err := telemetry.Init(telemetry.LogOptions{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		telemetry.Error("logger init failed", map[string]any{"error": err.Error()})
		return 1
	}
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.InitTracing(ctx, telemetry.TracingOptions{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Env,
		Version:      version,
		OTLPEndpoint: cfg.OTelEndpoint,
		Insecure:     cfg.OTelInsecure,
		SampleRatio:  cfg.OTelSamplerRatio,
	})
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			telemetry.Warn("tracing shutdown failed", map[string]any{"error": err.Error()})
		}
	}()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		var loadErr *catalog.CatalogLoadError
		if errors.As(err, &loadErr) {
			telemetry.Error("catalog load failed", map[string]any{
				"source": loadErr.Source,
				"error":  loadErr.Err.Error(),
			})
			return 2
		}
		telemetry.Error("bootstrap failed", map[string]any{"error": err.Error()})
		return 1
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("starting API server", map[string]any{"addr": addr, "version": version})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Error("server error", map[string]any{"error": err.Error()})
			return 1
		}
	case <-ctx.Done():
		telemetry.Info("shutting down API server", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			telemetry.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
			return 1
		}
	}
	return 0
}
