package rewriter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/logger"
)

// Rewriter converts a conversational query into a caption-like phrase
// suitable for embedding.
type Rewriter interface {
	Rewrite(ctx context.Context, query string) (string, error)
}

// systemPrompt instructs the model to produce an embedding-friendly caption.
// Keeping the output between 3 and 12 words matches the caption length the
// embedding model was trained on.
const systemPrompt = `You rewrite user requests into short image captions for a vision search engine.
Rules:
- Output a single caption of 3 to 12 words.
- Remove conversational words (please, show me, can you, I want, find).
- Keep the visual content: objects, colors, actions, setting.
- Do not invent details that are not in the request.
- Answer in English, lowercase, no punctuation, no quotes.`

// Passthrough validates the query and returns it unchanged. Used when no
// rewriting model is configured.
type Passthrough struct{}

func (Passthrough) Rewrite(_ context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errs.New(errs.KindValidation, "query cannot be empty")
	}
	return query, nil
}

// LLMRewriter rewrites queries through an OpenAI-compatible chat endpoint.
type LLMRewriter struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	httpClient *http.Client
	log        *logger.LoggerClient
}

// NewRewriter picks the implementation for the given configuration:
// LLMRewriter when enabled, Passthrough otherwise.
func NewRewriter(cfg *Config, log *logger.LoggerClient) (Rewriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !cfg.Enabled {
		return Passthrough{}, nil
	}

	return &LLMRewriter{
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
		log:        log,
	}, nil
}

// Rewrite asks the model for a caption-form rewrite of query. Transient
// failures are retried a bounded number of times; validation failures are
// not. The rewritten phrase is returned trimmed.
func (r *LLMRewriter) Rewrite(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errs.New(errs.KindValidation, "query cannot be empty")
	}

	var rewritten string
	operation := func() error {
		out, err := r.complete(ctx, query)
		if err != nil {
			return err
		}
		rewritten = out
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(r.maxRetries)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		return "", errs.Wrap(errs.KindTranslation, "query rewrite failed", err)
	}

	r.log.Debug("rewrote query", nil, map[string]interface{}{
		"query":     query,
		"rewritten": rewritten,
	})

	return rewritten, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs one chat completion round trip.
func (r *LLMRewriter) complete(ctx context.Context, query string) (string, error) {
	reqBody := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: query},
		},
		Temperature: 0,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("encode request: %w", err))
	}

	url := fmt.Sprintf("%s/v1/chat/completions", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("http %d for %s: %s", resp.StatusCode, url, strings.TrimSpace(string(snippet)))
		// Client errors will not heal on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	out := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty completion content")
	}

	return out, nil
}
