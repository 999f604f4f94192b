package config

import (
	"fmt"

	"github.com/rezkam/daily/internal/env"
)

// TestConfig locates the external services used by backend integration
// tests. Empty fields mean the corresponding tests are skipped.
type TestConfig struct {
	PostgresDSN string `env:"TEST_POSTGRES_DSN"`
	RedisAddr   string `env:"TEST_REDIS_ADDR"`
	GCSBucket   string `env:"TEST_GCS_BUCKET"`
}

// LoadTestConfig loads test configuration from environment.
func LoadTestConfig() (*TestConfig, error) {
	cfg := &TestConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	return cfg, nil
}
