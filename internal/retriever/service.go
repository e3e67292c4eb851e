package retriever

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/logger"
	"github.com/pictora/pictora/internal/metrics"
	"github.com/pictora/pictora/internal/vectordb"
)

// Embedder is the slice of the embedding client the retriever needs.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedImage(ctx context.Context, path string) ([]float32, error)
}

// Service answers similarity queries against one collection.
type Service struct {
	cfg      *Config
	embedder Embedder
	store    vectordb.Service
	log      *logger.LoggerClient
	metrics  *metrics.Metrics
}

// Params collects the dependencies of NewService for Fx.
type Params struct {
	fx.In

	Config   *Config
	Embedder Embedder
	Store    vectordb.Service
	Logger   *logger.LoggerClient
	Metrics  *metrics.Metrics
}

// NewService constructs the retrieval service.
func NewService(p Params) (*Service, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	return &Service{
		cfg:      p.Config,
		embedder: p.Embedder,
		store:    p.Store,
		log:      p.Logger,
		metrics:  p.Metrics,
	}, nil
}

// SearchByText returns the k indexed images most similar to the text query,
// optionally restricted by filter. Results come back in descending
// similarity order.
func (s *Service) SearchByText(ctx context.Context, text string, k int, filter *vectordb.Filter) ([]vectordb.SearchResult, error) {
	defer s.metrics.RecordSearchDuration(time.Now(), "text")

	k, err := s.clampK(k)
	if err != nil {
		s.metrics.IncrementSearches("text", "failure")
		return nil, err
	}

	vector, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		s.metrics.IncrementSearches("text", "failure")
		return nil, err
	}

	results, err := s.search(ctx, vector, k, filter)
	if err != nil {
		s.metrics.IncrementSearches("text", "failure")
		return nil, err
	}

	s.metrics.IncrementSearches("text", "success")
	return results, nil
}

// SearchByImage returns the k indexed images most similar to the example
// image at path.
func (s *Service) SearchByImage(ctx context.Context, path string, k int, filter *vectordb.Filter) ([]vectordb.SearchResult, error) {
	defer s.metrics.RecordSearchDuration(time.Now(), "image")

	k, err := s.clampK(k)
	if err != nil {
		s.metrics.IncrementSearches("image", "failure")
		return nil, err
	}

	// Reject a bad query image up front, before spending an embedding call.
	if _, err := os.Stat(path); err != nil {
		s.metrics.IncrementSearches("image", "failure")
		return nil, errs.Wrap(errs.KindInvalidInput, fmt.Sprintf("cannot read query image %s", path), err)
	}

	vector, err := s.embedder.EmbedImage(ctx, path)
	if err != nil {
		s.metrics.IncrementSearches("image", "failure")
		return nil, err
	}

	results, err := s.search(ctx, vector, k, filter)
	if err != nil {
		s.metrics.IncrementSearches("image", "failure")
		return nil, err
	}

	s.metrics.IncrementSearches("image", "success")
	return results, nil
}

// search runs the store query shared by both search modes.
func (s *Service) search(ctx context.Context, vector []float32, k int, filter *vectordb.Filter) ([]vectordb.SearchResult, error) {
	results, err := s.store.Query(ctx, vectordb.SearchRequest{
		Collection: s.cfg.Collection,
		Vector:     vector,
		Limit:      k,
		Filter:     filter,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("search completed", nil, map[string]interface{}{
		"collection": s.cfg.Collection,
		"k":          k,
		"results":    len(results),
	})

	return results, nil
}

// clampK validates k and caps it at the configured maximum.
func (s *Service) clampK(k int) (int, error) {
	if k <= 0 {
		return 0, errs.Newf(errs.KindValidation, "k must be positive, got %d", k)
	}
	if k > s.cfg.MaxResults {
		return s.cfg.MaxResults, nil
	}
	return k, nil
}
