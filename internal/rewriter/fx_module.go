package rewriter

import "go.uber.org/fx"

// FXModule wires the query rewriter into Fx.
//
// It provides:
//   - *Config   (NewConfig, environment-backed)
//   - Rewriter  (NewRewriter; Passthrough when disabled)
var FXModule = fx.Module(
	"rewriter",

	fx.Provide(
		NewConfig,   // -> *Config
		NewRewriter, // -> Rewriter
	),
)
