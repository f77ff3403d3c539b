package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects gate-level counters: how often requests were stopped by
// the rate limiter or token verifier, and upstream proxy failures.
type Metrics struct {
	rateLimited    prometheus.Counter
	authFailures   *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
}

// New registers the gateway counters; a nil reg falls back to the global
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gateway_rate_limited_total",
			Help: "Number of requests rejected by the rate limiter",
		}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_auth_failures_total",
			Help: "Number of requests rejected by the token verifier",
		}, []string{"reason"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_upstream_errors_total",
			Help: "Number of failed outbound calls to upstream services",
		}, []string{"upstream"}),
	}
	reg.MustRegister(m.rateLimited, m.authFailures, m.upstreamErrors)
	return m
}

func (m *Metrics) RateLimited() {
	if m != nil {
		m.rateLimited.Inc()
	}
}

func (m *Metrics) AuthFailure(reason string) {
	if m != nil {
		m.authFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) UpstreamError(upstream string) {
	if m != nil {
		m.upstreamErrors.WithLabelValues(upstream).Inc()
	}
}
