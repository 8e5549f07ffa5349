package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module.
type Metrics struct {
	// Search latency split by whether a radius filter was applied
	SearchLatency *prometheus.HistogramVec

	// Number of providers returned per search
	SearchResults prometheus.Histogram

	// Record store failures surfaced as retrieval failures
	RetrievalFailures prometheus.Counter

	ProfileUpdates *prometheus.CounterVec

	SpecializationCacheHits *prometheus.CounterVec
}

// New registers the directory collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "directory_search_duration_seconds",
			Help:    "Duration of directory searches including candidate retrieval",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"geo"}), // geo: "true", "false"

		SearchResults: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "directory_search_results",
			Help:    "Number of providers returned by a search",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),

		RetrievalFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "directory_retrieval_failures_total",
			Help: "Searches that failed because candidates could not be fetched",
		}),

		ProfileUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_profile_updates_total",
			Help: "Provider self-service updates by kind",
		}, []string{"kind"}), // kind: "profile", "availability"

		SpecializationCacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "directory_specialization_cache_total",
			Help: "Specialization list lookups by cache result",
		}, []string{"result"}), // result: "hit", "miss"
	}
}

// ObserveSearch records one completed search.
func (m *Metrics) ObserveSearch(geo bool, results int, d time.Duration) {
	if m == nil {
		return
	}
	label := "false"
	if geo {
		label = "true"
	}
	m.SearchLatency.WithLabelValues(label).Observe(d.Seconds())
	m.SearchResults.Observe(float64(results))
}

func (m *Metrics) IncrementRetrievalFailure() {
	if m != nil {
		m.RetrievalFailures.Inc()
	}
}

func (m *Metrics) IncrementProfileUpdate(kind string) {
	if m != nil {
		m.ProfileUpdates.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementSpecializationCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.SpecializationCacheHits.WithLabelValues("hit").Inc()
		return
	}
	m.SpecializationCacheHits.WithLabelValues("miss").Inc()
}
