// Package pipeline orchestrates the one-shot dashboard data run: load the
// registry, aggregate daily power records into capacity metrics, match feed
// names to registry units, merge, and compute fleet statistics. Each run
// reads full input and recomputes full output; there is no incremental state,
// so identical inputs yield byte-identical artifacts.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/reactorwatch/plant-dashboard/internal/capacity"
	"github.com/reactorwatch/plant-dashboard/internal/config"
	"github.com/reactorwatch/plant-dashboard/internal/domain"
	"github.com/reactorwatch/plant-dashboard/internal/observability"
	"github.com/reactorwatch/plant-dashboard/internal/registry"
)

// Inputs are the two source tables.
type Inputs struct {
	Registry  io.Reader
	DailyFeed io.Reader
}

// Artifacts is everything a run derives. Downstream consumers (assembler,
// document fetcher) read these; nothing feeds back into the pipeline.
type Artifacts struct {
	Reactors        []domain.ReactorUnit
	Sites           []domain.Site
	CapacityFactors map[string]*domain.CapacityFactorSummary
	FleetStats      domain.FleetStats

	RegistryErrors []registry.RowError
	FeedErrors     []capacity.RowError
	UnmatchedUnits []string
}

// Pipeline wires the loader and aggregator under one configuration.
type Pipeline struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger, metrics: metrics}
}

// Run executes one load-aggregate-merge cycle. Row-level problems in either
// table are reported in the artifacts and logged; only a structurally
// unreadable table is fatal.
func (p *Pipeline) Run(in Inputs) (*Artifacts, error) {
	start := time.Now()

	units, regErrs, err := registry.Load(in.Registry)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	p.metrics.RegistryRows.Add(float64(len(units) + len(regErrs)))
	p.metrics.RegistryRowErrors.Add(float64(len(regErrs)))
	for _, re := range regErrs {
		p.logger.Warn("registry row rejected", "row", re.Row, "unit", re.Name, "error", re.Err)
	}

	byUnit, feedErrs, err := capacity.ReadDailyFeed(in.DailyFeed)
	if err != nil {
		return nil, fmt.Errorf("load daily feed: %w", err)
	}
	for _, fe := range feedErrs {
		p.logger.Warn("daily feed row rejected", "row", fe.Row, "error", fe.Err)
	}

	agg := capacity.New(p.cfg.Thresholds)
	summaries := agg.SummarizeAll(byUnit)
	p.metrics.UnitsAggregated.Add(float64(len(summaries)))

	feedNames := make([]string, 0, len(byUnit))
	for name := range byUnit {
		feedNames = append(feedNames, name)
	}
	matcher := registry.NewMatcher(feedNames, p.cfg.NameOverrides)

	var unmatched []string
	for i := range units {
		feedName, ok := matcher.Match(units[i].Name)
		if !ok {
			p.logger.Warn("no performance data for unit", "unit", units[i].Name)
			unmatched = append(unmatched, units[i].Name)
			continue
		}
		units[i].Performance = summaries[feedName]
	}
	p.metrics.UnitsUnmatched.Add(float64(len(unmatched)))

	sites := registry.DeriveSites(units)
	fleet := capacity.Fleet(units, sites)

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("pipeline run complete",
		"units", len(units),
		"sites", len(sites),
		"registry_errors", len(regErrs),
		"feed_errors", len(feedErrs),
		"unmatched", len(unmatched),
	)

	return &Artifacts{
		Reactors:        units,
		Sites:           sites,
		CapacityFactors: summaries,
		FleetStats:      fleet,
		RegistryErrors:  regErrs,
		FeedErrors:      feedErrs,
		UnmatchedUnits:  unmatched,
	}, nil
}

// WriteArtifacts serializes the derived outputs into the data directory:
// reactors.json, sites.json, capacity_factors.json, fleet_stats.json.
// encoding/json sorts map keys, so output bytes are stable across runs.
func WriteArtifacts(dir string, art *Artifacts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	files := map[string]any{
		"reactors.json":         art.Reactors,
		"sites.json":            art.Sites,
		"capacity_factors.json": art.CapacityFactors,
		"fleet_stats.json":      art.FleetStats,
	}
	for name, v := range files {
		if err := writeJSON(filepath.Join(dir, name), v); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
