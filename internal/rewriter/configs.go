package rewriter

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the connection settings for the query rewriting model.
type Config struct {
	// Enabled toggles rewriting. When false the Passthrough implementation
	// is used and no network calls are made.
	Enabled bool `yaml:"enabled" env:"REWRITER_ENABLED"`

	// Endpoint is the base URL of an OpenAI-compatible API.
	Endpoint string `yaml:"endpoint" env:"REWRITER_ENDPOINT"`

	// APIKey is sent as a Bearer token when non-empty.
	APIKey string `yaml:"api_key" env:"REWRITER_API_KEY"`

	// Model is the chat model used for rewriting.
	Model string `yaml:"model" env:"REWRITER_MODEL"`

	// HTTPTimeoutS bounds one rewrite request in seconds.
	HTTPTimeoutS int `yaml:"http_timeout_s" env:"REWRITER_HTTP_TIMEOUT_S"`

	// MaxRetries bounds retry attempts on transient failures.
	MaxRetries int `yaml:"max_retries" env:"REWRITER_MAX_RETRIES"`
}

// NewConfig reads the rewriter settings from the environment.
func NewConfig() *Config {
	cfg := &Config{
		Enabled:      os.Getenv("REWRITER_ENABLED") == "true",
		Endpoint:     os.Getenv("REWRITER_ENDPOINT"),
		APIKey:       os.Getenv("REWRITER_API_KEY"),
		Model:        os.Getenv("REWRITER_MODEL"),
		HTTPTimeoutS: 20,
		MaxRetries:   2,
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if v := os.Getenv("REWRITER_HTTP_TIMEOUT_S"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeoutS = n
		}
	}
	if v := os.Getenv("REWRITER_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// Validate checks the settings needed when rewriting is enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("rewriter: missing endpoint")
	}
	if c.Model == "" {
		return fmt.Errorf("rewriter: missing model")
	}
	if c.HTTPTimeoutS <= 0 {
		return fmt.Errorf("rewriter: http timeout must be positive, got %d", c.HTTPTimeoutS)
	}
	return nil
}
