package search

import (
	"context"
	"testing"

	"github.com/poiesic/sift/extract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err, "collectors cannot be registered twice")
}

func TestMetricsMonitor(t *testing.T) {
	store := newTestStore(t)
	putObject(t, store, "a.pdf", extract.BuildPDF("needle", "needle"))
	putObject(t, store, "b.pdf", []byte("garbage"))
	putSheet(t, store, "c.xlsx", []any{"needlx"})
	searcher := newTestSearcher(t, store)

	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = searcher.SearchWithMonitor(ctx, "needle", metrics.Monitor())
	require.NoError(t, err)
	_, err = searcher.SearchWithMonitor(ctx, "absent", metrics.Monitor())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.searches.WithLabelValues("results_ready")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.searches.WithLabelValues("no_match_found")))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.documents))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.skipped))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.matches.WithLabelValues("exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.matches.WithLabelValues("fuzzy")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration), "one latency series")
}
