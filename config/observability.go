package config

// ObservabilityConfig contains metrics configuration.
type ObservabilityConfig struct {
	// MetricsEnabled exposes Prometheus metrics on /metrics when true.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}
