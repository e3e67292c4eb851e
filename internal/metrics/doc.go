// Package metrics exposes Prometheus metrics for the indexing and retrieval
// pipeline.
//
// Each process owns an isolated registry wrapped with a constant service
// label. The /metrics HTTP server only starts when an address is configured;
// short-lived CLI invocations run with the server disabled and the counters
// simply go unscraped.
package metrics
