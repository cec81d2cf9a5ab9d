// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the parse/validate pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trustlabel"

// DefaultDurationBuckets are seconds-scale buckets for request latency.
var DefaultDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Metrics holds the application's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ReportsParsed       *prometheus.CounterVec
	ParseConfidence     prometheus.Histogram
	Verdicts            *prometheus.CounterVec
	ParameterResults    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, so tests can create
// as many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   DefaultDurationBuckets,
		}, []string{"route", "method"}),
		ReportsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "reports_total",
			Help:      "Parsed lab reports by detected lab format.",
		}, []string{"lab_format"}),
		ParseConfidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "parser",
			Name:      "confidence",
			Help:      "Extraction confidence score of parsed reports.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validator",
			Name:      "verdicts_total",
			Help:      "Overall compliance verdicts.",
		}, []string{"status"}),
		ParameterResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validator",
			Name:      "parameter_results_total",
			Help:      "Per-parameter validation outcomes.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.ReportsParsed,
		m.ParseConfidence,
		m.Verdicts,
		m.ParameterResults,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveReport records a parsed report. Safe on a nil receiver.
func (m *Metrics) ObserveReport(format string, confidence int) {
	if m == nil {
		return
	}
	m.ReportsParsed.WithLabelValues(format).Inc()
	m.ParseConfidence.Observe(float64(confidence))
}

// ObserveVerdict records an overall verdict and its per-parameter statuses.
// Safe on a nil receiver.
func (m *Metrics) ObserveVerdict(verdict string, statuses []string) {
	if m == nil {
		return
	}
	m.Verdicts.WithLabelValues(verdict).Inc()
	for _, s := range statuses {
		m.ParameterResults.WithLabelValues(s).Inc()
	}
}
