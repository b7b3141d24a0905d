package form

import (
	"time"

	"github.com/louisbranch/formrelay/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes used as metric and log labels.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics records submission counters for the form service.
type Metrics struct {
	submissions *prometheus.CounterVec
	duration    prometheus.Histogram
	stored      prometheus.Gauge
}

// NewMetrics registers the form service collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "form",
			Name:      "submissions_total",
			Help:      "Form submissions by outcome and failed rule.",
		}, []string{"outcome", "rule"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "form",
			Name:      "submission_duration_seconds",
			Help:      "Time spent handling one submission.",
			Buckets:   prometheus.DefBuckets,
		}),
		stored: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: "form",
			Name:      "stored_submissions",
			Help:      "Submissions currently held in memory.",
		}),
	}
}

func (m *Metrics) observe(outcome, rule string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome, rule).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) setStored(count int) {
	if m == nil {
		return
	}
	m.stored.Set(float64(count))
}
