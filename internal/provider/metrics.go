package provider

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Call names used as the "call" label.
const (
	CallMaxHistory = "max_history"
	CallRange      = "range"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics counts provider round trips. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the provider collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Market-data provider requests by call and outcome.",
		}, []string{"provider", "call", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Market-data provider request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "call"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Observe records one finished request.
func (m *Metrics) Observe(provider, call, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, call, outcome).Inc()
	m.duration.WithLabelValues(provider, call).Observe(elapsed.Seconds())
}

// Requests exposes the request counter, mainly for tests.
func (m *Metrics) Requests() *prometheus.CounterVec { return m.requests }
