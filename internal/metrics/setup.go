package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the optional HTTP server
// exposing it for scraping.
type Metrics struct {
	// Server serves the /metrics endpoint. Nil when no address is configured.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each process keeps its own isolated registry to prevent name collisions.
	Registry *prometheus.Registry

	// Pipeline metrics
	imagesIndexed  *prometheus.CounterVec
	upsertBatches  prometheus.Counter
	searchesTotal  *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	resultsSaved   prometheus.Counter
	queryRewrites  *prometheus.CounterVec
}

// NewMetrics initializes the registry, registers the pipeline metrics under
// a constant service label, and prepares the scrape server when an address
// is configured.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this process carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.imagesIndexed = createCounterVec("images_indexed_total",
		"Total number of images embedded and upserted", []string{"status"})
	m.upsertBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upsert_batches_total",
		Help: "Total number of vector store upsert batches",
	})
	m.searchesTotal = createCounterVec("searches_total",
		"Total number of similarity searches", []string{"mode", "status"})
	m.searchDuration = createHistogramVec("search_duration_seconds",
		"End-to-end similarity search latency in seconds", []string{"mode"}, prometheus.DefBuckets)
	m.resultsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "results_saved_total",
		Help: "Total number of result images materialized to disk",
	})
	m.queryRewrites = createCounterVec("query_rewrites_total",
		"Total number of query rewrite attempts", []string{"status"})

	wrappedRegistry.MustRegister(
		m.imagesIndexed,
		m.upsertBatches,
		m.searchesTotal,
		m.searchDuration,
		m.resultsSaved,
		m.queryRewrites,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
	}

	return m
}
