package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ObserveImagesIndexed adds to the indexed-image counter.
// Example: metrics.ObserveImagesIndexed(5, "success")
func (m *Metrics) ObserveImagesIndexed(count int, status string) {
	m.imagesIndexed.WithLabelValues(status).Add(float64(count))
}

// IncrementUpsertBatches counts one committed upsert batch.
func (m *Metrics) IncrementUpsertBatches() {
	m.upsertBatches.Inc()
}

// IncrementSearches counts one similarity search by mode ("text"/"image")
// and outcome.
func (m *Metrics) IncrementSearches(mode, status string) {
	m.searchesTotal.WithLabelValues(mode, status).Inc()
}

// RecordSearchDuration records end-to-end search latency.
// Example: defer metrics.RecordSearchDuration(time.Now(), "text")
func (m *Metrics) RecordSearchDuration(start time.Time, mode string) {
	m.searchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// IncrementResultsSaved adds to the materialized-result counter.
func (m *Metrics) IncrementResultsSaved(count int) {
	m.resultsSaved.Add(float64(count))
}

// IncrementQueryRewrites counts one query rewrite attempt by outcome.
func (m *Metrics) IncrementQueryRewrites(status string) {
	m.queryRewrites.WithLabelValues(status).Inc()
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}
