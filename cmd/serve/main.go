// Command serve runs the local static server over the built dashboard for
// manual testing. It is not part of the published artifact, which is a static
// file with no server-side logic.
//
// Usage:
//
//	go run ./cmd/serve -dir . -addr :8080
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reactorwatch/plant-dashboard/internal/adapter/httpserver"
	"github.com/reactorwatch/plant-dashboard/internal/config"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	dir := flag.String("dir", ".", "directory to serve")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		observability.NewLogger("info", "json").Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	srv := httpserver.NewServer(cfg.HTTPAddr, *dir, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	logger.Info("dashboard available", "addr", cfg.HTTPAddr)
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}
