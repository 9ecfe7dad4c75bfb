// Package metrics define las métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors HTTP y de autorización.
type Metrics struct {
	gatherer   prometheus.Gatherer
	registerer prometheus.Registerer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        prometheus.Gauge

	authzDecisionsTotal *prometheus.CounterVec
	rateLimitedTotal    prometheus.Counter
	loginsTotal         *prometheus.CounterVec
}

// New crea y registra las métricas en reg.
// reg nil usa un registry propio (con collectors de proceso y Go).
func New(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{
		gatherer:   reg,
		registerer: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo",
		}),
		authzDecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Decisiones de autorización por operación",
		}, []string{"operation", "decision"}),
		rateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rechazadas por rate limit",
		}),
		loginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Intentos de login por resultado",
		}, []string{"result"}), // result: ok|invalid
	}

	for _, c := range []prometheus.Collector{
		m.httpRequestsTotal, m.httpRequestDuration, m.httpInflight,
		m.authzDecisionsTotal, m.rateLimitedTotal, m.loginsTotal,
	} {
		if err := registerCollector(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler expone /metrics con el registry de m.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RequestStarted / RequestFinished instrumentan un request HTTP.
// route es el patrón de chi ("/veiculos/{id}"), no el path crudo.
func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.httpInflight.Inc()
}

func (m *Metrics) RequestFinished(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpInflight.Dec()
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) AuthzDecision(operation, decision string) {
	if m == nil {
		return
	}
	m.authzDecisionsTotal.WithLabelValues(operation, decision).Inc()
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimitedTotal.Inc()
}

func (m *Metrics) Login(ok bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if ok {
		result = "ok"
	}
	m.loginsTotal.WithLabelValues(result).Inc()
}

// registerCollector registra el collector ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}
