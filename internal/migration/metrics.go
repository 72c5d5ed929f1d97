package migration

import (
	"time"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts routed calls. A nil *Metrics records nothing.
type Metrics struct {
	calls     *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewMetrics registers the routing metrics on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "migration_calls_total",
				Help:      "Total number of data layer calls by implementation and outcome",
			},
			[]string{"operation", "target", "outcome"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "migration_fallbacks_total",
				Help:      "Total number of calls answered by legacy after the next implementation failed",
			},
			[]string{"operation", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "migration_call_duration_seconds",
				Help:      "Duration of data layer calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "target"},
		),
	}
}

func (m *Metrics) recordCall(op, target string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.calls.WithLabelValues(op, target, outcome).Inc()
	m.duration.WithLabelValues(op, target).Observe(elapsed.Seconds())
}

func (m *Metrics) recordFallback(op string, code internal.ErrorCode) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(op, string(code)).Inc()
}
