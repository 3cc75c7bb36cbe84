package extrinsic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
	outcomeError     = "error"
	outcomeCancelled = "cancelled"
)

// Metrics counts terminal submission outcomes.
type Metrics struct {
	SubmissionsTotal *prometheus.CounterVec
}

// NewMetrics registers the submission counters with registerer. A nil registerer creates unregistered
// counters.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "joyutils",
			Name:      "extrinsic_submissions_total",
			Help:      "Extrinsic submissions by terminal outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) record(outcome string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}
