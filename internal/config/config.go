package config

import (
	"fmt"

	"github.com/rezkam/daily/internal/env"
)

// Config is the configuration shared by every binary: where the task
// collection lives, how expiration runs, and whether telemetry is exported.
type Config struct {
	Storage       StorageConfig
	Expiration    ExpirationConfig
	Observability ObservabilityConfig
}

// Load parses DAILY_* environment variables into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
