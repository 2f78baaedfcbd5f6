// Package metrics defines the Prometheus collectors of the auth server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// authRequests counts register/login/me calls by result code.
	authRequests *prometheus.CounterVec

	// gateDecisions counts auth gate outcomes.
	gateDecisions *prometheus.CounterVec

	requestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry, together with the
// standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		authRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talentauth_auth_requests_total",
			Help: "Total number of auth endpoint calls by endpoint and result",
		}, []string{"endpoint", "result"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talentauth_gate_decisions_total",
			Help: "Total number of auth gate decisions by outcome",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talentauth_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.authRequests,
		m.gateDecisions,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) AuthRequest(endpoint, result string) {
	m.authRequests.WithLabelValues(endpoint, result).Inc()
}

func (m *Metrics) GateDecision(outcome string) {
	m.gateDecisions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
