package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IntakeMetrics records purchase-intent outcomes.
type IntakeMetrics struct {
	duration *prometheus.HistogramVec
	outcome  *prometheus.CounterVec
}

const (
	OutcomeCreated  = "created"
	OutcomeMerged   = "merged"
	OutcomeRejected = "rejected"
)

// NewIntakeMetrics registers the intake metrics on the provided registerer.
func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	if reg == nil {
		return &IntakeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_intake_duration_seconds",
		Help:    "Duration of purchase-intent handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	outcome := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_intake_total",
		Help: "Purchase intents by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, outcome)
	return &IntakeMetrics{
		duration: duration,
		outcome:  outcome,
	}
}

// Observe records one intake with its outcome and duration.
func (m *IntakeMetrics) Observe(outcome string, duration time.Duration) {
	if m == nil || m.outcome == nil {
		return
	}
	label := normalizeOutcome(outcome)
	m.outcome.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(duration.Seconds())
}

func normalizeOutcome(outcome string) string {
	switch outcome {
	case OutcomeCreated, OutcomeMerged, OutcomeRejected:
		return outcome
	default:
		return "unknown"
	}
}
