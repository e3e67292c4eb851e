package indexer

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the indexing pipeline settings.
type Config struct {
	// Collection is the vector store collection indexed images go into.
	Collection string `yaml:"collection" env:"INDEX_COLLECTION"`

	// Workers bounds how many directories are embedded concurrently.
	Workers int `yaml:"workers" env:"INDEX_WORKERS"`
}

// NewConfig reads the indexer settings from the environment.
func NewConfig() *Config {
	cfg := &Config{
		Collection: os.Getenv("INDEX_COLLECTION"),
		Workers:    1,
	}

	if cfg.Collection == "" {
		cfg.Collection = "semantic-image-search"
	}
	if v := os.Getenv("INDEX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}

	return cfg
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return fmt.Errorf("indexer: missing collection name")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("indexer: workers must be positive, got %d", c.Workers)
	}
	return nil
}
