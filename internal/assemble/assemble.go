// Package assemble merges the derived JSON artifacts into one self-contained
// HTML dashboard: data, map library, styling, and client-side interactivity
// all inlined, so the output file needs no server-side logic and works
// offline.
package assemble

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reactorwatch/plant-dashboard/internal/domain"
)

//go:embed dashboard.html.tmpl
var templateFS embed.FS

// Assembler renders the dashboard artifact.
type Assembler struct {
	assets *AssetFetcher
	logger *slog.Logger
	tmpl   *template.Template
}

// New creates an Assembler. The template is parsed once at construction.
func New(assets *AssetFetcher, logger *slog.Logger) (*Assembler, error) {
	tmpl, err := template.ParseFS(templateFS, "dashboard.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Assembler{assets: assets, logger: logger, tmpl: tmpl}, nil
}

// pageData is the template input. Data blobs are pre-serialized JSON; the
// assembler treats them as read-only and never feeds anything back upstream.
type pageData struct {
	Version string

	ReactorsJSON   template.JS
	FleetStatsJSON template.JS
	ActivityJSON   template.JS

	LeafletCSS    template.CSS
	LeafletJS     template.JS
	StatesGeoJSON template.JS
}

// Build reads the JSON artifacts from dataDir, inlines the external map
// assets, and writes the complete page to w.
func (a *Assembler) Build(ctx context.Context, dataDir string, w io.Writer) error {
	reactors, err := readArtifact(dataDir, "reactors.json")
	if err != nil {
		return err
	}
	fleetStats, err := readArtifact(dataDir, "fleet_stats.json")
	if err != nil {
		return err
	}

	// The document feed is optional: a dashboard without regulatory activity
	// is still a dashboard.
	activity, err := readArtifact(dataDir, "adams_activity_slim.json")
	if err != nil {
		a.logger.Warn("no document feed artifact, embedding empty feed", "error", err)
		activity = []byte(`{"by_docket":{}}`)
	}

	data := pageData{
		Version:        domain.Clock().Now().UTC().Format("200601021504"),
		ReactorsJSON:   template.JS(reactors),
		FleetStatsJSON: template.JS(fleetStats),
		ActivityJSON:   template.JS(activity),
		LeafletCSS:     template.CSS(a.assets.Fetch(ctx, LeafletCSSURL, "leaflet.css")),
		LeafletJS:      template.JS(a.assets.Fetch(ctx, LeafletJSURL, "leaflet.js")),
		StatesGeoJSON:  template.JS(a.assets.Fetch(ctx, StatesGeoJSONURL, "us-states.json")),
	}

	if err := a.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// BuildFile renders the dashboard into outPath.
func (a *Assembler) BuildFile(ctx context.Context, dataDir, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := a.Build(ctx, dataDir, f); err != nil {
		return err
	}
	a.logger.Info("dashboard written", "path", outPath)
	return nil
}

func readArtifact(dataDir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, name))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}
	return data, nil
}
