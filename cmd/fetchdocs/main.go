// Command fetchdocs queries the ADAMS document library for each reactor's
// docket, filters out industry-wide notices, and writes both the full
// activity artifact and the slimmed form embedded in the dashboard.
//
// Usage:
//
//	go run ./cmd/fetchdocs -config dashboard.yaml -reactors data/reactors.json -out data
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/reactorwatch/plant-dashboard/internal/adapter/adams"
	"github.com/reactorwatch/plant-dashboard/internal/config"
	"github.com/reactorwatch/plant-dashboard/internal/docs"
	"github.com/reactorwatch/plant-dashboard/internal/domain"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	reactorsPath := flag.String("reactors", "data/reactors.json", "reactors artifact from cmd/process")
	outDir := flag.String("out", "", "output directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		observability.NewLogger("info", "json").Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.DataDir = *outDir
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	data, err := os.ReadFile(*reactorsPath)
	if err != nil {
		logger.Error("cannot read reactors artifact", "path", *reactorsPath, "error", err)
		os.Exit(1)
	}
	var units []domain.ReactorUnit
	if err := json.Unmarshal(data, &units); err != nil {
		logger.Error("cannot parse reactors artifact", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := adams.NewClient(cfg.ADAMSBaseURL, cfg.FetchTimeout.Std(), logger)
	searcher := adams.NewCachedSearcher(client, cfg.CacheSize, metrics)
	fetcher := docs.NewFetcher(searcher, logger, metrics, cfg.DocsPerDocket, cfg.FetchWorkers)

	logger.Info("fetching document feeds", "units", len(units), "workers", cfg.FetchWorkers)
	report := fetcher.BuildReport(ctx, units)
	slim := docs.Slim(report)

	if err := writeJSON(filepath.Join(cfg.DataDir, "adams_activity.json"), report); err != nil {
		logger.Error("write activity artifact failed", "error", err)
		os.Exit(1)
	}
	if err := writeJSON(filepath.Join(cfg.DataDir, "adams_activity_slim.json"), slim); err != nil {
		logger.Error("write slim artifact failed", "error", err)
		os.Exit(1)
	}

	logger.Info("document feeds written",
		"total_documents", report.TotalDocuments,
		"reactors_with_activity", report.ReactorsWithActivity,
	)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
