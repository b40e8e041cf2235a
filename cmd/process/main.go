// Command process reads the reactor master table and the daily power feed,
// computes per-unit capacity metrics and fleet statistics, and writes the
// JSON artifacts consumed by cmd/build.
//
// Usage:
//
//	go run ./cmd/process \
//	  -config dashboard.yaml \
//	  -registry data/reactors_master.csv \
//	  -power data/reactor_status_daily.csv \
//	  -out data
package main

import (
	"flag"
	"os"

	"github.com/reactorwatch/plant-dashboard/internal/config"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
	"github.com/reactorwatch/plant-dashboard/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	registryPath := flag.String("registry", "", "reactor master CSV (overrides config)")
	powerPath := flag.String("power", "", "daily power CSV (overrides config)")
	outDir := flag.String("out", "", "output directory for JSON artifacts (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		observability.NewLogger("info", "json").Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *registryPath != "" {
		cfg.RegistryCSV = *registryPath
	}
	if *powerPath != "" {
		cfg.PowerCSV = *powerPath
	}
	if *outDir != "" {
		cfg.DataDir = *outDir
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	registryFile, err := os.Open(cfg.RegistryCSV)
	if err != nil {
		logger.Error("cannot open registry table", "path", cfg.RegistryCSV, "error", err)
		os.Exit(1)
	}
	defer registryFile.Close()

	powerFile, err := os.Open(cfg.PowerCSV)
	if err != nil {
		logger.Error("cannot open daily power table", "path", cfg.PowerCSV, "error", err)
		os.Exit(1)
	}
	defer powerFile.Close()

	p := pipeline.New(cfg, logger, metrics)
	artifacts, err := p.Run(pipeline.Inputs{
		Registry:  registryFile,
		DailyFeed: powerFile,
	})
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}

	if err := pipeline.WriteArtifacts(cfg.DataDir, artifacts); err != nil {
		logger.Error("write artifacts failed", "error", err)
		os.Exit(1)
	}

	logger.Info("artifacts written",
		"dir", cfg.DataDir,
		"reactors", len(artifacts.Reactors),
		"sites", len(artifacts.Sites),
	)
}
