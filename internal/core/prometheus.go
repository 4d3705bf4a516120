package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsRecorder exports engine operation metrics through a
// Prometheus registry: a duration histogram and a result counter, both
// labeled by operation.
type PrometheusMetricsRecorder struct {
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder constructs a recorder and registers its
// collectors with reg.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	rec := &PrometheusMetricsRecorder{
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "providerdir",
			Name:      "operation_duration_seconds",
			Help:      "Duration of directory engine operations.",
		}, []string{"operation"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "providerdir",
			Name:      "operation_results_total",
			Help:      "Engine operation outcomes by status.",
		}, []string{"operation", "status"}),
	}
	if err := reg.Register(rec.durations); err != nil {
		return nil, err
	}
	if err := reg.Register(rec.results); err != nil {
		return nil, err
	}
	return rec, nil
}

// Record implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Record(op string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.durations.WithLabelValues(op).Observe(d.Seconds())
	r.results.WithLabelValues(op, status).Inc()
}
