package poststateimpl

import (
	"time"

	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blog_post_state_operations_total",
			Help: "Settled post state operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blog_post_state_operation_duration_seconds",
			Help:    "Time from start to settle of post state operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// NewDefaultMetrics registers on the process-wide prometheus registry.
func NewDefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

// observe records one settled operation; outcome is "succeeded" or the failure kind.
func (m *Metrics) observe(op string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "succeeded"
	if err != nil {
		outcome = string(apperrors.GetKind(err))
		if outcome == "" {
			outcome = string(apperrors.KindRequestSetup)
		}
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}
