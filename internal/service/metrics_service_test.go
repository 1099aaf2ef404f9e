package service

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordBulkOutcome("created")
	m.RecordBulkOutcome("created")
	m.RecordBulkOutcome("failed")
	m.ObserveStoreCall("query", errors.New("boom"), time.Millisecond)
	m.ObserveHTTPRequest("GET", "/reviewed-events", 200, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bulkOutcomes.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bulkOutcomes.WithLabelValues("failed")))
	assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(m.cacheHitRatio), 1e-9)

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.RequestsTotal)
	assert.InDelta(t, 2.0/3.0, snap.CacheHitRatio, 1e-9)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.RecordBulkOutcome("created")
		m.RecordInvite(true)
		m.RecordFallback()
		m.ObserveStoreCall("query", nil, time.Second)
		_ = m.Snapshot()
	})
	assert.NotNil(t, m.Handler())
}
