// Package metrics defines the Prometheus metric set for oracle traffic and
// event searches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Oracle calls by backend, kind (body, star, houses) and result
	OracleCalls *prometheus.CounterVec

	// Oracle call latency by backend
	OracleLatency *prometheus.HistogramVec

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Search outcomes by kind (retro, aspect, ...) and outcome
	Searches *prometheus.CounterVec

	// Oracle samples taken per search
	SearchSamples *prometheus.HistogramVec
}

// New registers the metric set on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		OracleCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ls_transits_oracle_calls_total",
			Help: "Ephemeris oracle calls by backend, kind and result",
		}, []string{"backend", "kind", "result"}),

		OracleLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ls_transits_oracle_duration_seconds",
			Help:    "Duration of ephemeris oracle calls",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 0.5, 1, 2.5, 5},
		}, []string{"backend"}),

		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "ls_transits_oracle_cache_hits_total",
			Help: "Oracle cache hits",
		}),

		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "ls_transits_oracle_cache_misses_total",
			Help: "Oracle cache misses",
		}),

		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ls_transits_searches_total",
			Help: "Completed event searches by kind and outcome",
		}, []string{"kind", "outcome"}),

		SearchSamples: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ls_transits_search_samples",
			Help:    "Oracle samples taken per event search",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		}, []string{"kind"}),
	}
}

// ObserveOracleCall records one oracle call.
func (m *Metrics) ObserveOracleCall(backend, kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.OracleCalls.WithLabelValues(backend, kind, result).Inc()
	m.OracleLatency.WithLabelValues(backend).Observe(d.Seconds())
}

// CacheHit records an oracle cache hit.
func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// CacheMiss records an oracle cache miss.
func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// ObserveSearch records a finished search and the samples it took.
func (m *Metrics) ObserveSearch(kind, outcome string, samples int) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(kind, outcome).Inc()
	m.SearchSamples.WithLabelValues(kind).Observe(float64(samples))
}
