package vectordb

import "context"

// Service is the gateway contract for the backing vector store.
//
// Implementations hold one long-lived connection and are safe for concurrent
// use once constructed. All methods block until the store answers or ctx is
// done; none of them retry validation failures.
type Service interface {
	// EnsureCollection creates the named collection with the given vector
	// dimension if it does not exist. Idempotent: a second call with the same
	// parameters is a no-op, and a create lost to a concurrent racer is not
	// surfaced as fatal. An existing collection with a different dimension is
	// rejected with a validation error rather than silently reused.
	EnsureCollection(ctx context.Context, name string, dimension uint64) error

	// Upsert inserts or overwrites the identified items. Large inputs are
	// split into chunked multi-point upserts internally. Visibility of
	// individual items follows the store's consistency semantics.
	Upsert(ctx context.Context, collection string, items []Item) error

	// Query returns up to req.Limit items nearest to req.Vector, restricted
	// to items matching req.Filter (nil filter = unrestricted), ordered by
	// descending similarity.
	Query(ctx context.Context, req SearchRequest) ([]SearchResult, error)

	// Delete removes points by ID from a collection.
	Delete(ctx context.Context, collection string, ids []string) error

	// Clear deletes every item in the collection. The collection definition
	// itself persists. Irreversible.
	Clear(ctx context.Context, collection string) error

	// Collection retrieves metadata about a collection.
	Collection(ctx context.Context, name string) (*CollectionInfo, error)
}
