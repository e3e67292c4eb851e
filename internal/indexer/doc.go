// Package indexer walks image corpora, embeds them, and upserts the vectors
// into the index.
//
// Point IDs are derived deterministically from the absolute source path, so
// re-indexing the same tree overwrites instead of duplicating. Each
// directory is one embed-then-upsert unit; directories are processed by a
// bounded worker pool.
package indexer
