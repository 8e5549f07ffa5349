package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions       *prometheus.CounterVec
	LimiterErrors   prometheus.Counter
	CircuitOpen     prometheus.Gauge
	GlobalThrottled prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ratelimit_decisions_total",
			Help: "Rate limit checks by endpoint class and outcome",
		}, []string{"class", "outcome"}), // outcome: "allowed", "limited", "error"
		LimiterErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "ratelimit_primary_errors_total",
			Help: "Errors returned by the primary bucket store",
		}),
		CircuitOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ratelimit_circuit_open",
			Help: "1 while checks are served by the in-process fallback",
		}),
		GlobalThrottled: factory.NewCounter(prometheus.CounterOpts{
			Name: "ratelimit_global_throttled_total",
			Help: "Requests rejected by the process-wide throttle",
		}),
	}
}

func (m *Metrics) ObserveDecision(class, outcome string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(class, outcome).Inc()
}

func (m *Metrics) IncrementLimiterErrors() {
	if m == nil {
		return
	}
	m.LimiterErrors.Inc()
}

func (m *Metrics) SetCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitOpen.Set(1)
		return
	}
	m.CircuitOpen.Set(0)
}

func (m *Metrics) IncrementGlobalThrottled() {
	if m == nil {
		return
	}
	m.GlobalThrottled.Inc()
}
