// Command build assembles the self-contained dashboard HTML from the JSON
// artifacts produced by cmd/process and cmd/fetchdocs. Map assets are fetched
// once and cached so the output works offline.
//
// Usage:
//
//	go run ./cmd/build -config dashboard.yaml -data data -out index.html
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/reactorwatch/plant-dashboard/internal/assemble"
	"github.com/reactorwatch/plant-dashboard/internal/config"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	dataDir := flag.String("data", "", "artifact directory (overrides config)")
	outPath := flag.String("out", "index.html", "output HTML path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		observability.NewLogger("info", "json").Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assets := assemble.NewAssetFetcher(cfg.CacheDir, cfg.FetchTimeout.Std(), logger)
	assembler, err := assemble.New(assets, logger)
	if err != nil {
		logger.Error("assembler init failed", "error", err)
		os.Exit(1)
	}

	if err := assembler.BuildFile(ctx, cfg.DataDir, *outPath); err != nil {
		logger.Error("dashboard build failed", "error", err)
		os.Exit(1)
	}
}
