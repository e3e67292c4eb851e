package qdrant

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pictora/pictora/internal/errs"
)

// validateSearchInput validates common search parameters.
func validateSearchInput(collection string, vector []float32, limit int) error {
	if collection == "" {
		return errs.New(errs.KindValidation, "collection name cannot be empty")
	}
	if len(vector) == 0 {
		return errs.New(errs.KindValidation, "query vector cannot be empty")
	}
	if limit <= 0 {
		return errs.New(errs.KindValidation, "limit must be greater than 0")
	}
	return nil
}

// classify maps a gRPC failure onto the application error taxonomy.
// Unclassifiable errors get the caller-supplied fallback kind.
func classify(err error, fallback errs.Kind) errs.Kind {
	st, ok := status.FromError(err)
	if !ok {
		return fallback
	}

	switch st.Code() {
	case codes.NotFound:
		return errs.KindCollectionNotFound
	case codes.InvalidArgument:
		return errs.KindValidation
	case codes.Unavailable, codes.Unauthenticated, codes.PermissionDenied, codes.DeadlineExceeded:
		return errs.KindIndexUnavailable
	default:
		return fallback
	}
}

// retryable reports whether a failure is worth retrying. Only connectivity
// and overload conditions qualify; everything else fails immediately.
func retryable(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
		return true
	default:
		return false
	}
}

// withRetry runs op with bounded exponential backoff on transient failures.
func (c *Client) withRetry(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.MaxRetries)),
		ctx,
	)

	return backoff.Retry(wrapped, policy)
}

// extractVectorDetails safely extracts the vector size and distance metric
// from a Qdrant CollectionInfo. The schema uses a named vector map, so the
// named entry is looked up first; the single unnamed form is handled for
// collections created outside this application.
//
// If any nested field is missing or of an unexpected type, the function
// returns zero values rather than panicking on the protobuf oneof chain.
func extractVectorDetails(info *qdrant.CollectionInfo) (uint64, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}

	switch cfg := info.Config.Params.VectorsConfig.Config.(type) {
	case *qdrant.VectorsConfig_ParamsMap:
		if cfg.ParamsMap == nil {
			return 0, ""
		}
		if params, ok := cfg.ParamsMap.Map[vectorName]; ok && params != nil {
			return params.Size, params.Distance.String()
		}
		return 0, ""
	case *qdrant.VectorsConfig_Params:
		if cfg.Params == nil {
			return 0, ""
		}
		return cfg.Params.Size, cfg.Params.Distance.String()
	default:
		return 0, ""
	}
}

// derefUint64 safely dereferences a *uint64 pointer.
func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
