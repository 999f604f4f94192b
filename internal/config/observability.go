package config

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"DAILY_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"DAILY_SERVICE_NAME" default:"daily"`
}
