package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	require.NotNil(t, m.Registry)
	assert.Nil(t, m.Server, "no server without an address")

	m = NewMetrics(Config{ServiceName: "test", Address: ":9090"})
	require.NotNil(t, m.Server)
	assert.Equal(t, ":9090", m.Server.Addr)
}

func TestPipelineCounters(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveImagesIndexed(5, "success")
	m.ObserveImagesIndexed(2, "failure")
	assert.Equal(t, float64(5), testutil.ToFloat64(m.imagesIndexed.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.imagesIndexed.WithLabelValues("failure")))

	m.IncrementUpsertBatches()
	m.IncrementUpsertBatches()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.upsertBatches))

	m.IncrementSearches("text", "success")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.searchesTotal.WithLabelValues("text", "success")))

	m.IncrementResultsSaved(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.resultsSaved))

	m.IncrementQueryRewrites("success")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.queryRewrites.WithLabelValues("success")))

	m.RecordSearchDuration(time.Now(), "image")
	assert.Equal(t, 1, testutil.CollectAndCount(m.searchDuration))
}
