package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordUserOperation(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordUserOperation("get_by_id", "not_found")
	m.RecordUserOperation("get_by_id", "not_found")
	m.RecordUserOperation("create", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UserOperationsTotal.WithLabelValues("get_by_id", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UserOperationsTotal.WithLabelValues("create", "ok")))
}

func TestRecordCacheLookup(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordCacheLookup("user", true)
	m.RecordCacheLookup("user", false)
	m.RecordCacheLookup("user", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("user")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("user")))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
