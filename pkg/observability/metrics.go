package observability

import (
	"context"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for validation outcomes.
type Metrics struct {
	Validations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conform_validations_total",
				Help: "Total number of validations by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "conform_validation_duration_seconds",
				Help:    "Duration of top-level validations",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"source"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Validations, m.Duration)
	}
	return m
}

// Hooks returns validation hooks that record every event.
func (m *Metrics) Hooks() domain.ValidationHooks {
	return domain.ValidationHooks{
		OnValidate: func(ctx context.Context, e *domain.ValidationEvent) {
			m.Validations.WithLabelValues(e.Source, Outcome(e.Valid)).Inc()
			m.Duration.WithLabelValues(e.Source).Observe(e.Duration.Seconds())
		},
	}
}

// Outcome is the metric label for a validation result.
func Outcome(valid bool) string {
	if valid {
		return "pass"
	}
	return "fail"
}
