package retriever

import (
	"go.uber.org/fx"

	"github.com/pictora/pictora/internal/embedding"
)

// FXModule wires the retrieval service into Fx.
//
// It provides:
//   - *Config   (NewConfig, environment-backed)
//   - Embedder  (the embedding client, under the retrieval interface)
//   - *Service  (NewService)
var FXModule = fx.Module(
	"retriever",

	fx.Provide(
		NewConfig, // -> *Config
		func(c *embedding.Client) Embedder { return c },
		NewService, // -> *Service
	),
)
