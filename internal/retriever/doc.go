// Package retriever answers similarity queries and materializes the hits.
//
// Queries are text or example images, embedded into the same vector space
// the corpus was indexed in. SaveResults copies the matched source images
// into a fresh directory, re-encoded as PNG; a failed save never leaves a
// half-populated directory behind.
package retriever
