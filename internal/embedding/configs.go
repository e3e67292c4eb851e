package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// EMBEDDING_ENDPOINT must point to the root of the inference service
// (no /v1/embeddings appended); the provider appends paths itself.

// Config holds connection and model settings for the embedding service.
type Config struct {
	// Endpoint is the base URL of the inference service.
	Endpoint string `yaml:"endpoint" env:"EMBEDDING_ENDPOINT"`

	// ServiceToken authenticates requests. Optional for unsecured deployments.
	ServiceToken string `yaml:"service_token" env:"EMBEDDING_SERVICE_TOKEN"`

	// Model is the encoder identifier, e.g. "ViT-B-32".
	Model string `yaml:"model" env:"EMBEDDING_MODEL"`

	// Checkpoint selects the pretrained weights, e.g. "laion2b_s34b_b79k".
	// Forwarded to the serving layer as-is.
	Checkpoint string `yaml:"checkpoint" env:"EMBEDDING_CHECKPOINT"`

	// Device is a scheduling hint for the serving layer ("cpu", "cuda").
	Device string `yaml:"device" env:"EMBEDDING_DEVICE"`

	// Dimension is the vector size the encoder produces. Every response
	// vector is checked against it.
	Dimension int `yaml:"dimension" env:"EMBEDDING_DIMENSION"`

	// HTTPTimeoutS bounds each request in seconds (default 30).
	HTTPTimeoutS int `yaml:"http_timeout_seconds" env:"EMBEDDING_HTTP_TIMEOUT_SECONDS"`
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	dimension := 512
	if v := os.Getenv("EMBEDDING_DIMENSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			dimension = n
		}
	}

	model := os.Getenv("EMBEDDING_MODEL")
	if model == "" {
		model = "ViT-B-32"
	}

	checkpoint := os.Getenv("EMBEDDING_CHECKPOINT")
	if checkpoint == "" {
		checkpoint = "laion2b_s34b_b79k"
	}

	device := os.Getenv("EMBEDDING_DEVICE")
	if device == "" {
		device = "cpu"
	}

	return &Config{
		Endpoint:     os.Getenv("EMBEDDING_ENDPOINT"),
		ServiceToken: os.Getenv("EMBEDDING_SERVICE_TOKEN"),
		Model:        model,
		Checkpoint:   checkpoint,
		Device:       device,
		Dimension:    dimension,
		HTTPTimeoutS: timeout,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_MODEL")
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("embedding: dimension must be positive, got %d", c.Dimension)
	}
	return nil
}
