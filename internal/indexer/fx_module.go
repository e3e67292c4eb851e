package indexer

import (
	"go.uber.org/fx"

	"github.com/pictora/pictora/internal/embedding"
)

// FXModule wires the indexing pipeline into Fx.
//
// It provides:
//   - *Config   (NewConfig, environment-backed)
//   - Embedder  (the embedding client, under the pipeline interface)
//   - *Service  (NewService)
var FXModule = fx.Module(
	"indexer",

	fx.Provide(
		NewConfig, // -> *Config
		func(c *embedding.Client) Embedder { return c },
		NewService, // -> *Service
	),
)
