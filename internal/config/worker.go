package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrIntervalTooShort is returned for expiration intervals under one second.
var ErrIntervalTooShort = errors.New("DAILY_EXPIRATION_INTERVAL must be at least 1s")

// ErrNonPositiveTimeout is returned when the per-run operation timeout is
// zero or negative.
var ErrNonPositiveTimeout = errors.New("DAILY_OPERATION_TIMEOUT must be positive")

// ExpirationConfig controls the background expiration check.
type ExpirationConfig struct {
	Interval         time.Duration `env:"DAILY_EXPIRATION_INTERVAL" default:"60s"`
	OperationTimeout time.Duration `env:"DAILY_OPERATION_TIMEOUT" default:"10s"`

	// Timezone names the IANA zone used for due dates without an offset.
	// Empty means the process local zone.
	Timezone string `env:"DAILY_TIMEZONE"`
}

// Validate checks interval and timeout bounds and that the timezone resolves.
func (c *ExpirationConfig) Validate() error {
	if c.Interval < time.Second {
		return ErrIntervalTooShort
	}
	if c.OperationTimeout <= 0 {
		return ErrNonPositiveTimeout
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *ExpirationConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
