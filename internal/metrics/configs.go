package metrics

import "os"

// Config controls the metrics registry and the optional scrape endpoint.
type Config struct {
	// Address is the listen address for the /metrics endpoint, e.g. ":9090".
	// Empty disables the HTTP server; metrics are still collected.
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is attached to every metric as a constant "service" label.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`

	// EnableDefaultCollectors adds the Go runtime, process, and build info
	// collectors to the registry.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_DEFAULT_COLLECTORS"`
}

// NewConfig reads the metrics settings from the environment.
func NewConfig() Config {
	cfg := Config{
		Address:                 os.Getenv("METRICS_ADDRESS"),
		ServiceName:             os.Getenv("METRICS_SERVICE_NAME"),
		EnableDefaultCollectors: os.Getenv("METRICS_DEFAULT_COLLECTORS") != "false",
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "pictora"
	}
	return cfg
}
