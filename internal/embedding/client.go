package embedding

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/pictora/pictora/internal/errs"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides transport details from the application layer, enforces the
// configured vector dimension on every response, and classifies failures
// into the application error taxonomy.
type Client struct {
	provider  Provider
	dimension int
}

// NewClient constructs a Client from Config. The underlying HTTP client is
// built once here and reused for the process lifetime.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p, dimension: cfg.Dimension}, nil
}

// Dimension returns the vector size this client produces.
func (c *Client) Dimension() int {
	return c.dimension
}

// EmbedText converts one text into an embedding vector.
// Empty or whitespace-only text is rejected before any network call.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.New(errs.KindValidation, "text cannot be empty for embedding")
	}

	vectors, err := c.create(ctx, []Input{{Text: text}})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedImage converts the image at path into an embedding vector.
func (c *Client) EmbedImage(ctx context.Context, path string) ([]float32, error) {
	vectors, err := c.EmbedImageBatch(ctx, []string{path})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedImageBatch converts multiple images in one request. The result is
// order-preserving: vectors[i] belongs to paths[i]. Any unreadable file or
// backend failure fails the whole batch.
func (c *Client) EmbedImageBatch(ctx context.Context, paths []string) ([][]float32, error) {
	if len(paths) == 0 {
		return nil, errs.New(errs.KindValidation, "no image paths provided")
	}

	inputs := make([]Input, len(paths))
	for i, path := range paths {
		in, err := imageInput(path)
		if err != nil {
			return nil, err
		}
		inputs[i] = in
	}

	return c.create(ctx, inputs)
}

// create runs the provider call and enforces the dimension invariant on
// every returned vector. A mismatch means the deployed model and the
// collection configuration disagree; storing such vectors would corrupt
// retrieval, so it fails here.
func (c *Client) create(ctx context.Context, inputs []Input) ([][]float32, error) {
	vectors, err := c.provider.CreateEmbeddings(ctx, inputs)
	if err != nil {
		return nil, errs.Wrap(errs.KindEmbedding, "embedding request failed", err)
	}

	if len(vectors) != len(inputs) {
		return nil, errs.Newf(errs.KindEmbedding,
			"got %d vectors for %d inputs", len(vectors), len(inputs))
	}

	for i, v := range vectors {
		if len(v) != c.dimension {
			return nil, errs.Newf(errs.KindEmbedding,
				"vector %d has dimension %d, expected %d", i, len(v), c.dimension)
		}
	}

	return vectors, nil
}

// imageInput reads and base64-encodes one image file.
func imageInput(path string) (Input, error) {
	mediaType := mediaTypeForPath(path)
	if mediaType == "" {
		return Input{}, errs.Newf(errs.KindValidation, "unsupported image extension: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Input{}, errs.Wrap(errs.KindEmbedding, fmt.Sprintf("cannot read image %s", path), err)
	}

	return Input{
		Image:     base64.StdEncoding.EncodeToString(raw),
		MediaType: mediaType,
	}, nil
}
