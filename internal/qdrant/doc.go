// Package qdrant implements the vectordb.Service gateway on top of the
// official Qdrant Go client.
//
// The adapter owns the collection schema: every collection it creates uses a
// single named vector "default" with cosine distance, stored on disk. All
// writes are blocking (Wait=true), so a returned Upsert is durable and
// visible to subsequent queries.
//
// gRPC failures are classified into the application error taxonomy: NotFound
// becomes a collection-not-found error, connectivity and auth failures become
// index-unavailable, and invalid requests become validation errors. Transient
// failures are retried a bounded number of times before surfacing.
package qdrant
