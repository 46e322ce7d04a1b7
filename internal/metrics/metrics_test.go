package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_OracleCalls(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOracleCall("analytic", "body", time.Millisecond, nil)
	m.ObserveOracleCall("analytic", "body", time.Millisecond, nil)
	m.ObserveOracleCall("analytic", "star", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OracleCalls.WithLabelValues("analytic", "body", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OracleCalls.WithLabelValues("analytic", "star", "error")))
}

func TestMetrics_CacheAndSearch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.ObserveSearch("retro", "found", 120)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("retro", "found")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOracleCall("x", "body", time.Second, nil)
		m.CacheHit()
		m.CacheMiss()
		m.ObserveSearch("retro", "found", 1)
	})
}
