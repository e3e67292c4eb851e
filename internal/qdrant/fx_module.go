package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/pictora/pictora/internal/vectordb"
)

// FXModule wires the Qdrant gateway into Fx.
//
// It provides:
//   - *Config           (NewConfig, environment-backed)
//   - *Client           (NewClient, connected and health-checked)
//   - vectordb.Service  (the *Client, under the gateway interface)
//
// and registers a shutdown hook that closes the gRPC connection.
var FXModule = fx.Module(
	"qdrant",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
		func(c *Client) vectordb.Service { return c },
	),

	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle closes the client on application shutdown.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
