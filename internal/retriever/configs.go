package retriever

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the retrieval settings.
type Config struct {
	// Collection is the vector store collection searches run against.
	Collection string `yaml:"collection" env:"SEARCH_COLLECTION"`

	// MaxResults caps the per-query result count. Requests asking for more
	// are clamped, not rejected.
	MaxResults int `yaml:"max_results" env:"SEARCH_MAX_RESULTS"`

	// RetrievedRoot is the directory SaveResults creates result sets under.
	RetrievedRoot string `yaml:"retrieved_root" env:"SEARCH_RETRIEVED_ROOT"`
}

// NewConfig reads the retrieval settings from the environment.
func NewConfig() *Config {
	cfg := &Config{
		Collection:    os.Getenv("SEARCH_COLLECTION"),
		MaxResults:    100,
		RetrievedRoot: os.Getenv("SEARCH_RETRIEVED_ROOT"),
	}

	if cfg.Collection == "" {
		cfg.Collection = "semantic-image-search"
	}
	if v := os.Getenv("SEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxResults = n
		}
	}
	if cfg.RetrievedRoot == "" {
		cfg.RetrievedRoot = "retrieved_images"
	}

	return cfg
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return fmt.Errorf("retriever: missing collection name")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("retriever: max results must be positive, got %d", c.MaxResults)
	}
	if c.RetrievedRoot == "" {
		return fmt.Errorf("retriever: missing retrieved root directory")
	}
	return nil
}
