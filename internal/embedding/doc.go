// Package embedding provides the client for the multimodal embedding
// inference service.
//
// The service wraps a pretrained CLIP-style encoder behind an
// OpenAI-compatible /v1/embeddings endpoint that accepts text entries and
// base64-encoded image entries in a single request, returning one
// fixed-dimension vector per input in input order. Text and images share one
// embedding space, which is what makes text-to-image retrieval work.
//
// # Usage
//
//	client, err := embedding.NewClient(cfg)
//	if err != nil {
//	    return err
//	}
//	vec, err := client.EmbedText(ctx, "a red sports car")
//
// The client validates every returned vector against the configured
// dimension and fails fast on mismatch, so a misconfigured model can never
// poison a collection.
//
// # Thread safety
//
// A Client holds one reusable *http.Client and no per-call state; it is safe
// for concurrent use once constructed.
package embedding
