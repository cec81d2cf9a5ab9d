package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlabel/internal/metrics"
)

func TestObserveReport(t *testing.T) {
	m := metrics.New()

	m.ObserveReport("EUROFINS", 91)
	m.ObserveReport("EUROFINS", 40)
	m.ObserveReport("UNKNOWN", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportsParsed.WithLabelValues("EUROFINS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsParsed.WithLabelValues("UNKNOWN")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ParseConfidence))
}

func TestObserveVerdict(t *testing.T) {
	m := metrics.New()

	m.ObserveVerdict("conditional", []string{"approved", "warning", "warning"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verdicts.WithLabelValues("conditional")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParameterResults.WithLabelValues("warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParameterResults.WithLabelValues("approved")))
}

func TestNilReceiver(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveReport("SGS", 50)
		m.ObserveVerdict("approved", []string{"approved"})
	})
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.ObserveVerdict("approved", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `trustlabel_validator_verdicts_total{status="approved"} 1`)
}

func TestNew_Independent(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.ObserveReport("SGS", 10)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.ReportsParsed.WithLabelValues("SGS")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
