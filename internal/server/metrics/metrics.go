// Package metrics exposes Prometheus collectors for the gRPC API and the
// dashboard watch streams.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mindkeeper"

// Metrics groups the server's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	rpcTotal        *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	watchersActive  prometheus.Gauge
	dashboardBuilds *prometheus.CounterVec
	changeEvents    *prometheus.CounterVec
}

// MustNewMetrics creates the collectors and registers them with reg,
// panicking on a registration conflict.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		rpcTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "grpc",
				Name:      "requests_total",
				Help:      "Handled RPCs by method and status code.",
			},
			[]string{"method", "code"},
		),
		rpcDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "grpc",
				Name:      "request_duration_seconds",
				Help:      "Time spent handling unary RPCs.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		watchersActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "dashboard",
				Name:      "watchers_active",
				Help:      "Open WatchDashboard streams.",
			},
		),
		dashboardBuilds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dashboard",
				Name:      "builds_total",
				Help:      "Dashboards built, split by whether defaults had to be substituted.",
			},
			[]string{"result"},
		),
		changeEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "changes",
				Name:      "events_total",
				Help:      "Change events delivered to watchers by source table.",
			},
			[]string{"table"},
		),
	}
	reg.MustRegister(m.rpcTotal, m.rpcDuration, m.watchersActive, m.dashboardBuilds, m.changeEvents)
	return m
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(method, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcTotal.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) WatcherStarted() {
	if m == nil {
		return
	}
	m.watchersActive.Inc()
}

func (m *Metrics) WatcherStopped() {
	if m == nil {
		return
	}
	m.watchersActive.Dec()
}

// ObserveDashboard counts a built dashboard.
func (m *Metrics) ObserveDashboard(degraded bool) {
	if m == nil {
		return
	}
	result := "ok"
	if degraded {
		result = "degraded"
	}
	m.dashboardBuilds.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveChange(table string) {
	if m == nil {
		return
	}
	m.changeEvents.WithLabelValues(table).Inc()
}

// Handler serves the collectors gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
