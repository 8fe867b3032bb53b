package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// DefaultBatchSize is the stream batch size used when no flag is given.
	DefaultBatchSize int `json:"defaultBatchSize" yaml:"defaultBatchSize"`
	// MaxBatchSize caps a single stream batch.
	MaxBatchSize int `json:"maxBatchSize" yaml:"maxBatchSize"`
	// MaxBulkGeneration caps one bulk generation request.
	MaxBulkGeneration int `json:"maxBulkGeneration" yaml:"maxBulkGeneration"`
	// MaxStreamGeneration caps one streaming generation job.
	MaxStreamGeneration int `json:"maxStreamGeneration" yaml:"maxStreamGeneration"`
	// MaxErrorDetail caps the per-item error list in job summaries.
	MaxErrorDetail int `json:"maxErrorDetail" yaml:"maxErrorDetail"`
	// Workers sizes the parallel worker pool; 0 means GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers"`
	// Strict makes validation bound decoded timestamps by "now" by default.
	Strict bool `json:"strict" yaml:"strict"`
	// LogLevel and LogFormat configure CLI logging (debug|info|warn|error,
	// text|json).
	LogLevel  string `json:"logLevel" yaml:"logLevel"`
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DefaultBatchSize:    1000,
		MaxBatchSize:        10_000,
		MaxBulkGeneration:   10_000,
		MaxStreamGeneration: 100_000,
		MaxErrorDetail:      100,
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// Load reads configuration from a JSON or YAML file by extension. An empty
// path returns defaults. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that would fail every job up front.
func (c Config) Validate() error {
	if c.DefaultBatchSize <= 0 {
		return fmt.Errorf("config: defaultBatchSize must be positive, got %d", c.DefaultBatchSize)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("config: maxBatchSize must be positive, got %d", c.MaxBatchSize)
	}
	if c.DefaultBatchSize > c.MaxBatchSize {
		return fmt.Errorf("config: defaultBatchSize %d exceeds maxBatchSize %d", c.DefaultBatchSize, c.MaxBatchSize)
	}
	if c.MaxBulkGeneration <= 0 || c.MaxStreamGeneration <= 0 {
		return fmt.Errorf("config: generation caps must be positive")
	}
	if c.MaxErrorDetail < 0 || c.Workers < 0 {
		return fmt.Errorf("config: maxErrorDetail and workers must not be negative")
	}
	return nil
}
