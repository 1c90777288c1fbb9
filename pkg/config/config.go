// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Log      LogConfig      `koanf:"log"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Cache    CacheConfig    `koanf:"cache"`
	Scenario ScenarioConfig `koanf:"scenario"`
	Solver   SolverConfig   `koanf:"solver"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// CacheConfig holds result-cache settings.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Driver     string        `koanf:"driver"` // redis, memory
	Host       string        `koanf:"host"`
	Port       int           `koanf:"port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
	MaxEntries int           `koanf:"max_entries"` // for in-memory
}

// Address returns the cache backend's network address.
func (c CacheConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ScenarioConfig controls synthetic CDN topology generation.
type ScenarioConfig struct {
	// Seed drives every scenario's pseudo-random generator, making topology
	// generation reproducible across runs.
	Seed int64 `koanf:"seed"`

	// MediumCacheEdgeConnectivity is the probability that a given
	// cache/edge-server pair is connected in the medium-scale scenario.
	MediumCacheEdgeConnectivity float64 `koanf:"medium_cache_edge_connectivity"`

	// LargeOriginCacheConnectivity is the probability that a given
	// origin/cache pair is connected in the large-scale scenario.
	LargeOriginCacheConnectivity float64 `koanf:"large_origin_cache_connectivity"`

	// LargeCacheEdgeConnectivity is the probability that a given
	// cache/edge-server pair is connected in the large-scale scenario.
	LargeCacheEdgeConnectivity float64 `koanf:"large_cache_edge_connectivity"`

	// ScalabilitySteps is the number of growth steps generated by
	// GenerateScalability.
	ScalabilitySteps int `koanf:"scalability_steps"`
}

// SolverConfig controls how the benchmark harness drives flow.Graph.Solve.
type SolverConfig struct {
	// WarnOnUnsaturated logs a warning when a solve finishes with
	// Result.Satisfied == false instead of silently reporting it.
	WarnOnUnsaturated bool `koanf:"warn_on_unsaturated"`
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		errs = append(errs, fmt.Sprintf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port))
	}

	if c.Scenario.ScalabilitySteps < 0 {
		errs = append(errs, "scenario.scalability_steps must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the app is configured for development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the app is configured for production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
