package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCall(t *testing.T) {
	m := New()

	m.ObserveCall("news", time.Now(), nil)
	m.ObserveCall("news", time.Now(), errors.New("boom"))
	m.ObserveCall("summarizer", time.Now(), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("news", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("news", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("summarizer", "success")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCall("news", time.Now(), nil)
		m.ObserveRequest("/summarize", "200")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveRequest("/analyze_sentiment", "200")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `newsdigest_http_requests_total{path="/analyze_sentiment",status="200"} 1`)
}
