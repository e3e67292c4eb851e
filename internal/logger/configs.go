package logger

import "os"

// Level is the minimum severity the logger emits.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum log level. Defaults to Info.
	Level Level `yaml:"level" env:"LOGGER_LEVEL"`

	// ServiceName is added as a constant field to every entry.
	ServiceName string `yaml:"service_name" env:"LOGGER_SERVICE_NAME"`
}

// NewConfig reads the logger configuration from environment variables.
func NewConfig() Config {
	level := Info
	switch Level(os.Getenv("LOGGER_LEVEL")) {
	case Debug:
		level = Debug
	case Warning:
		level = Warning
	case Error:
		level = Error
	}

	name := os.Getenv("LOGGER_SERVICE_NAME")
	if name == "" {
		name = "pictora"
	}

	return Config{Level: level, ServiceName: name}
}
