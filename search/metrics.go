package search

import (
	"time"

	"github.com/poiesic/sift/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by MetricsMonitor.
type Metrics struct {
	searches  *prometheus.CounterVec
	documents prometheus.Counter
	skipped   prometheus.Counter
	matches   *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewMetrics creates the search collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "searches_total",
			Help:      "Searches completed, by outcome.",
		}, []string{"outcome"}),
		documents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "documents_scanned_total",
			Help:      "Documents fetched, extracted and matched.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "documents_skipped_total",
			Help:      "Documents skipped because they could not be fetched or extracted.",
		}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "matches_total",
			Help:      "Snippets returned, by match kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sift",
			Name:      "search_duration_seconds",
			Help:      "Wall time of a search from listing to result.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.searches, m.documents, m.skipped, m.matches, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Monitor returns a SearchMonitor that records one search into m.
// Use a fresh monitor per search.
func (m *Metrics) Monitor() *MetricsMonitor {
	return &MetricsMonitor{metrics: m}
}

// MetricsMonitor is a SearchMonitor backed by Prometheus collectors.
type MetricsMonitor struct {
	metrics *Metrics
	started time.Time
}

var _ SearchMonitor = (*MetricsMonitor)(nil)

func (mm *MetricsMonitor) Start(_ string) {
	mm.started = time.Now()
}

func (mm *MetricsMonitor) AfterListing(_ []core.CorpusKey) {}

func (mm *MetricsMonitor) DocumentSkipped(_ core.CorpusKey, _ error) {
	mm.metrics.skipped.Inc()
}

func (mm *MetricsMonitor) DocumentMatched(_ core.CorpusKey, matches []*core.Match) {
	mm.metrics.documents.Inc()
	for _, m := range matches {
		mm.metrics.matches.WithLabelValues(m.Match.String()).Inc()
	}
}

func (mm *MetricsMonitor) Finish(result *core.SearchResult) {
	mm.metrics.searches.WithLabelValues(result.Outcome.String()).Inc()
	if !mm.started.IsZero() {
		mm.metrics.duration.Observe(time.Since(mm.started).Seconds())
	}
}
