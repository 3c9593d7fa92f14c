// Package config holds ingestion tuning parameters, loaded from YAML or
// defaulted by callers that don't need a file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"barcore/internal/ingest"
)

// Config tunes the ingestion pipeline. Zero value is not valid; use
// Default or Load.
type Config struct {
	// DefaultCadenceSeconds is used by callers that don't derive cadence
	// from the source adapter directly.
	DefaultCadenceSeconds int64 `yaml:"default_cadence_seconds"`
	// MaxDeviationPct is the cadence-deviation ceiling; above this the
	// cadence validator fails the batch.
	MaxDeviationPct float64 `yaml:"max_deviation_pct"`
	// DowncastTolerance is the maximum allowed round-trip absolute error
	// when downcasting a price column from float64 to float32.
	DowncastTolerance float64 `yaml:"downcast_tolerance"`
	// SampleOffenders caps how many sample timestamps a NonUtcTimestamps
	// error carries. Duplicate removal reports only a count
	// (Metrics.DuplicatesRemoved); no duplicate samples are collected.
	SampleOffenders int `yaml:"sample_offenders"`
	// BackendTag identifies the compute backend for IngestionMetrics.
	BackendTag ingest.BackendTag `yaml:"backend_tag"`
}

// Cadence returns DefaultCadenceSeconds as a time.Duration.
func (c Config) Cadence() time.Duration {
	return time.Duration(c.DefaultCadenceSeconds) * time.Second
}

// Options adapts Config to the ingest.Options shape a caller passes to
// ingest.Ingest.
func (c Config) Options() ingest.Options {
	return ingest.Options{
		MaxDeviationPct:   c.MaxDeviationPct,
		DowncastTolerance: c.DowncastTolerance,
		SampleOffenders:   c.SampleOffenders,
		BackendTag:        c.BackendTag,
	}
}

// Default returns the spec's literal defaults.
func Default() Config {
	return Config{
		DefaultCadenceSeconds: 60,
		MaxDeviationPct:       2.0,
		DowncastTolerance:     1e-6,
		SampleOffenders:       5,
		BackendTag:            ingest.BackendNativeGo,
	}
}

// Load reads a YAML config file over Default: fields absent from the file
// keep their Default values, while a field the file sets explicitly (even
// to zero) takes the file's value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
