package assemble

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Default asset sources inlined into the artifact so the page works offline.
const (
	LeafletCSSURL    = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJSURL     = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
	StatesGeoJSONURL = "https://raw.githubusercontent.com/PublicaMundi/MappingAPI/master/data/geojson/us-states.json"
)

// AssetFetcher fetches external static assets and caches them on disk so
// repeated builds do not re-download.
type AssetFetcher struct {
	httpClient *http.Client
	cacheDir   string
	logger     *slog.Logger
}

// NewAssetFetcher creates an AssetFetcher caching into cacheDir.
func NewAssetFetcher(cacheDir string, timeout time.Duration, logger *slog.Logger) *AssetFetcher {
	return &AssetFetcher{
		httpClient: &http.Client{Timeout: timeout},
		cacheDir:   cacheDir,
		logger:     logger,
	}
}

// Fetch returns the asset body, from cache when present. An unfetchable
// asset degrades to an empty string with a warning so the build still
// completes; the page loses the corresponding feature, not the data.
func (f *AssetFetcher) Fetch(ctx context.Context, url, filename string) string {
	cachePath := filepath.Join(f.cacheDir, filename)
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data)
	}

	body, err := f.download(ctx, url)
	if err != nil {
		f.logger.Warn("asset fetch failed, embedding empty block",
			"url", url, "error", err)
		return ""
	}

	if err := os.MkdirAll(f.cacheDir, 0o755); err == nil {
		if err := os.WriteFile(cachePath, body, 0o644); err != nil {
			f.logger.Warn("asset cache write failed", "path", cachePath, "error", err)
		}
	}
	return string(body)
}

func (f *AssetFetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset fetch: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
