package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/fx"

	"github.com/pictora/pictora/internal/logger"
)

// Client wraps the official Qdrant Go client and implements the
// vectordb.Service gateway for the image index.
type Client struct {
	api *qdrant.Client
	cfg *Config
	log *logger.LoggerClient
}

const (
	// defaultBatchSize is the chunk size for batch upserts.
	defaultBatchSize = 200

	// vectorName is the named vector every collection stores its embeddings
	// under. Must match at upsert and query time.
	vectorName = "default"
)

// Params collects the dependencies of NewClient for Fx.
type Params struct {
	fx.In

	Config *Config
	Logger *logger.LoggerClient
}

// NewClient constructs a connected Client and validates connectivity via a
// health check. The Qdrant SDK creates lightweight gRPC connections, so the
// health check is what actually fails fast when the service is unreachable.
func NewClient(p Params) (*Client, error) {
	port := p.Config.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   p.Config.Endpoint,
		Port:                   port,
		APIKey:                 p.Config.ApiKey,
		SkipCompatibilityCheck: !p.Config.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	c := &Client{
		api: api,
		cfg: p.Config,
		log: p.Logger,
	}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("qdrant: health check failed: %w", err)
	}

	p.Logger.Info("connected to qdrant", nil, map[string]interface{}{
		"endpoint": p.Config.Endpoint,
		"port":     port,
	})

	return c, nil
}

// healthCheck verifies the availability of the Qdrant service. Lightweight,
// used during startup and readiness probes.
func (c *Client) healthCheck() error {
	if c.api == nil {
		return fmt.Errorf("qdrant: client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return err
	}

	c.log.Debug("qdrant health check passed", nil, map[string]interface{}{
		"title":   resp.Title,
		"version": resp.Version,
	})

	return nil
}

// Api returns the underlying Qdrant SDK client for direct access to
// low-level operations.
func (c *Client) Api() *qdrant.Client {
	return c.api
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}
