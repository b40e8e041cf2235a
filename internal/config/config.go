package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can use the "20s" / "5m"
// notation.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Thresholds are the policy constants behind status classification and trend
// detection. They are explicit configuration rather than package constants so
// tests can pin and override them.
type Thresholds struct {
	// FullPower is the minimum power percentage classified as full power and
	// counted toward high-power runs.
	FullPower float64 `yaml:"full_power"`
	// ReducedPower is the minimum power percentage classified as reduced
	// (rather than low) power.
	ReducedPower float64 `yaml:"reduced_power"`
	// Trend is the capacity-factor difference, in percentage points, beyond
	// which the 30-day window counts as improving or declining versus the
	// prior window.
	Trend float64 `yaml:"trend"`
}

// Config holds all pipeline settings. Values come from defaults, overlaid by
// an optional YAML file, overlaid by environment variables for the
// deployment-specific fields.
type Config struct {
	RegistryCSV string `yaml:"registry_csv"`
	PowerCSV    string `yaml:"power_csv"`
	DataDir     string `yaml:"data_dir"`
	CacheDir    string `yaml:"cache_dir"`

	HTTPAddr  string `yaml:"http_addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// ADAMS document-search settings.
	ADAMSBaseURL  string   `yaml:"adams_base_url"`
	DocsPerDocket int      `yaml:"docs_per_docket"`
	FetchWorkers  int      `yaml:"fetch_workers"`
	FetchTimeout  Duration `yaml:"fetch_timeout"`
	CacheSize     int      `yaml:"cache_size"`

	Thresholds Thresholds `yaml:"thresholds"`

	// NameOverrides maps registry unit names to daily-feed unit names for
	// the cases automatic normalization cannot bridge.
	NameOverrides map[string]string `yaml:"name_overrides"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RegistryCSV:   "data/reactors_master.csv",
		PowerCSV:      "data/reactor_status_daily.csv",
		DataDir:       "data",
		CacheDir:      "cache",
		HTTPAddr:      ":8080",
		LogLevel:      "info",
		LogFormat:     "json",
		ADAMSBaseURL:  "https://adams.nrc.gov/wba/services/search/advanced/nrc",
		DocsPerDocket: 5,
		FetchWorkers:  5,
		FetchTimeout:  Duration(20 * time.Second),
		CacheSize:     200,
		Thresholds: Thresholds{
			FullPower:    95,
			ReducedPower: 50,
			Trend:        2.0,
		},
		NameOverrides: defaultNameOverrides(),
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.DataDir = envOrDefault("DASHBOARD_DATA_DIR", cfg.DataDir)
	cfg.CacheDir = envOrDefault("DASHBOARD_CACHE_DIR", cfg.CacheDir)
	cfg.ADAMSBaseURL = envOrDefault("ADAMS_BASE_URL", cfg.ADAMSBaseURL)
	cfg.HTTPAddr = envOrDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RegistryCSV == "" {
		return errors.New("registry_csv is required")
	}
	if c.PowerCSV == "" {
		return errors.New("power_csv is required")
	}
	if c.ADAMSBaseURL == "" {
		return errors.New("adams_base_url is required")
	}
	if c.DocsPerDocket <= 0 {
		return errors.New("docs_per_docket must be positive")
	}
	if c.FetchWorkers <= 0 {
		return errors.New("fetch_workers must be positive")
	}
	if c.FetchTimeout <= 0 {
		return errors.New("fetch_timeout must be positive")
	}
	if c.CacheSize <= 0 {
		return errors.New("cache_size must be positive")
	}
	t := c.Thresholds
	if t.FullPower <= 0 || t.FullPower > 100 {
		return errors.New("thresholds.full_power must be in (0, 100]")
	}
	if t.ReducedPower <= 0 || t.ReducedPower >= t.FullPower {
		return errors.New("thresholds.reduced_power must be in (0, full_power)")
	}
	if t.Trend < 0 {
		return errors.New("thresholds.trend must be non-negative")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultNameOverrides maps master-table names to daily-feed names where the
// feed's short form is not derivable from the legal name.
func defaultNameOverrides() map[string]string {
	return map[string]string{
		"Callaway Plant":                              "Callaway 1",
		"Cooper Nuclear Station":                      "Cooper 1",
		"Davis-Besse Nuclear Power Station, Unit 1":   "Davis-Besse",
		"Donald C. Cook Nuclear Plant, Unit 1":        "D.C. Cook 1",
		"Donald C. Cook Nuclear Plant, Unit 2":        "D.C. Cook 2",
		"James A. FitzPatrick Nuclear Power Plant":    "Fitzpatrick 1",
		"R.E. Ginna Nuclear Power Plant":              "Ginna 1",
		"St. Lucie Plant, Unit 1":                     "St. Lucie 1",
		"St. Lucie Plant, Unit 2":                     "St. Lucie 2",
		"Shearon Harris Nuclear Power Plant, Unit 1":  "Harris 1",
		"Edwin I. Hatch Nuclear Plant, Unit 1":        "Hatch 1",
		"Edwin I. Hatch Nuclear Plant, Unit 2":        "Hatch 2",
		"Joseph M. Farley Nuclear Plant, Unit 1":      "Farley 1",
		"Joseph M. Farley Nuclear Plant, Unit 2":      "Farley 2",
		"H.B. Robinson Steam Electric Plant, Unit 2":  "Robinson 2",
		"H. B. Robinson Steam Electric Plant, Unit 2": "Robinson 2",
		"V.C. Summer Nuclear Station, Unit 1":         "Summer 1",
		"Virgil C. Summer Nuclear Station, Unit 1":    "Summer 1",
		"Palisades Nuclear Plant":                     "Palisades 1",
	}
}
