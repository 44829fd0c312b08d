package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/api/flowers/", 201, 10*time.Millisecond)
	m.Observe("POST", "/api/flowers/", 201, 5*time.Millisecond)
	m.Observe("DELETE", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/flowers/", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("DELETE", "unknown", "404")))
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	assert.NotPanics(t, func() { m.Observe("GET", "/", 200, time.Millisecond) })
	assert.NotPanics(t, func() { NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond) })
}
