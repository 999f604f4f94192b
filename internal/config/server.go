package config

import (
	"fmt"
	"net"
	"time"

	"github.com/rezkam/daily/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Config
	HTTP            HTTPConfig
	ShutdownTimeout time.Duration `env:"DAILY_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"DAILY_HTTP_HOST" default:"127.0.0.1"`
	Port              string        `env:"DAILY_HTTP_PORT" default:"8081"`
	ReadTimeout       time.Duration `env:"DAILY_HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout      time.Duration `env:"DAILY_HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout       time.Duration `env:"DAILY_HTTP_IDLE_TIMEOUT" default:"120s"`
	ReadHeaderTimeout time.Duration `env:"DAILY_HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	MaxBodyBytes      int64         `env:"DAILY_HTTP_MAX_BODY_BYTES" default:"1048576"`
}

// Addr returns the listen address.
func (c *HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Validate rejects a non-positive body limit.
func (c *HTTPConfig) Validate() error {
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("DAILY_HTTP_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
