// Package vectordb defines the store-agnostic contract the retrieval and
// indexing pipelines use to talk to a vector database.
//
// The application layer depends only on [Service] and the types in this
// package; the qdrant package provides the concrete implementation. Swapping
// the backing store (pgVector, Weaviate, ...) means adding another adapter
// package, not touching pipeline code.
//
//	type Retriever struct {
//	    db vectordb.Service
//	}
//
//	results, err := db.Query(ctx, vectordb.SearchRequest{
//	    Collection: "semantic-image-search",
//	    Vector:     queryVector,
//	    Limit:      5,
//	    Filter:     vectordb.ByCategory("dogs"),
//	})
//
// Filters are exact-match conjunctions over payload fields: every condition
// in Filter.Must has to hold for a point to be returned. Results come back
// ordered by descending similarity; ties are broken by the backing store's
// native order, which is not deterministic and must not be asserted in tests.
package vectordb
