package embedding

import "context"

// Provider is the low-level transport contract the Client builds on.
// It takes pre-encoded inputs and returns one vector per input, in order.
type Provider interface {
	CreateEmbeddings(ctx context.Context, inputs []Input) ([][]float32, error)
}

// Input is one entry in an embedding request: exactly one of Text or Image
// is set. Image carries base64-encoded bytes with the media type alongside.
type Input struct {
	Text      string `json:"text,omitempty"`
	Image     string `json:"image,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}
