package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// inferenceProvider talks to the OpenAI-compatible embeddings endpoint of
// the inference service.
type inferenceProvider struct {
	baseURL      string
	serviceToken string
	model        string
	checkpoint   string
	device       string
	httpClient   *http.Client
}

func newInferenceProvider(cfg *Config) (*inferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}

	return &inferenceProvider{
		baseURL:      strings.TrimRight(cfg.Endpoint, "/"),
		serviceToken: cfg.ServiceToken,
		model:        cfg.Model,
		checkpoint:   cfg.Checkpoint,
		device:       cfg.Device,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// CreateEmbeddings sends one request covering all inputs and returns the
// vectors in input order.
func (p *inferenceProvider) CreateEmbeddings(ctx context.Context, inputs []Input) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("inference: no inputs provided")
	}

	reqBody := map[string]any{
		"model":      p.model,
		"checkpoint": p.checkpoint,
		"device":     p.device,
		"input":      inputs,
	}

	url := fmt.Sprintf("%s/v1/embeddings", p.baseURL)

	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.postJSON(ctx, url, reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) != len(inputs) {
		return nil, fmt.Errorf("inference: got %d embeddings for %d inputs", len(parsed.Data), len(inputs))
	}

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}

	return out, nil
}
