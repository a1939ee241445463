package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsAllowed prometheus.Counter
	RequestsBlocked prometheus.Counter
	CircuitOpens    prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		RequestsAllowed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskscope_ratelimit_requests_allowed_total",
			Help: "Total requests admitted by the rate limiter",
		}),
		RequestsBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskscope_ratelimit_requests_blocked_total",
			Help: "Total requests rejected with 429 by the rate limiter",
		}),
		CircuitOpens: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskscope_ratelimit_circuit_opens_total",
			Help: "Times the rate limit store circuit breaker opened",
		}),
	}
}

func (m *Metrics) IncrementAllowed() {
	if m != nil {
		m.RequestsAllowed.Inc()
	}
}

func (m *Metrics) IncrementBlocked() {
	if m != nil {
		m.RequestsBlocked.Inc()
	}
}

func (m *Metrics) IncrementCircuitOpens() {
	if m != nil {
		m.CircuitOpens.Inc()
	}
}
