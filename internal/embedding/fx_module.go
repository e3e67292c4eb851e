package embedding

import "go.uber.org/fx"

// FXModule wires the embedding client into Fx.
//
// It provides:
//   - *Config  (NewConfig, environment-backed)
//   - *Client  (NewClient)
//
// The client holds no closable resources beyond the shared http.Client, so
// no lifecycle hook is registered.
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
	),
)
