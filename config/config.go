// Package config loads the application configuration from an optional YAML
// file on top of environment-backed defaults.
//
// Precedence: package defaults, then environment variables, then explicit
// settings from the YAML file. A missing file is not an error; the tool runs
// fully configured from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pictora/pictora/internal/embedding"
	"github.com/pictora/pictora/internal/indexer"
	"github.com/pictora/pictora/internal/logger"
	"github.com/pictora/pictora/internal/metrics"
	"github.com/pictora/pictora/internal/qdrant"
	"github.com/pictora/pictora/internal/retriever"
	"github.com/pictora/pictora/internal/rewriter"
)

// DefaultFile is the config file name looked up in the working directory
// when no path is given.
const DefaultFile = "pictora.yaml"

// Config aggregates every component's settings.
type Config struct {
	Logger    logger.Config    `yaml:"logger"`
	Qdrant    qdrant.Config    `yaml:"qdrant"`
	Embedding embedding.Config `yaml:"embedding"`
	Rewriter  rewriter.Config  `yaml:"rewriter"`
	Indexer   indexer.Config   `yaml:"indexer"`
	Retriever retriever.Config `yaml:"retriever"`
	Metrics   metrics.Config   `yaml:"metrics"`
}

// Default returns the configuration assembled from each package's
// environment-backed defaults.
func Default() *Config {
	return &Config{
		Logger:    logger.NewConfig(),
		Qdrant:    *qdrant.NewConfig(),
		Embedding: *embedding.NewConfig(),
		Rewriter:  *rewriter.NewConfig(),
		Indexer:   *indexer.NewConfig(),
		Retriever: *retriever.NewConfig(),
		Metrics:   metrics.NewConfig(),
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads the default config file from dir.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, DefaultFile))
}

// Validate checks every section that defines validation rules.
func (c *Config) Validate() error {
	if err := c.Embedding.Validate(); err != nil {
		return err
	}
	if err := c.Rewriter.Validate(); err != nil {
		return err
	}
	if err := c.Indexer.Validate(); err != nil {
		return err
	}
	return c.Retriever.Validate()
}
