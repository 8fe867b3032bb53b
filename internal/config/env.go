package config

import (
	"os"
	"strconv"
)

// FromEnv overlays ULID_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("ULID_DEFAULT_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultBatchSize = n
		}
	}
	if v := os.Getenv("ULID_MAX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxBatchSize = n
		}
	}
	if v := os.Getenv("ULID_MAX_BULK_GENERATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxBulkGeneration = n
		}
	}
	if v := os.Getenv("ULID_MAX_STREAM_GENERATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxStreamGeneration = n
		}
	}
	if v := os.Getenv("ULID_MAX_ERROR_DETAIL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxErrorDetail = n
		}
	}
	if v := os.Getenv("ULID_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("ULID_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Strict = b
		}
	}
	if v := os.Getenv("ULID_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ULID_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
