package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GenerationMetrics holds text generation metrics. A nil *GenerationMetrics is a no-op.
type GenerationMetrics struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewGenerationMetrics(reg prometheus.Registerer) *GenerationMetrics {
	m := &GenerationMetrics{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "calls_total",
			Help:      "Text generation calls by task and outcome.",
		}, []string{"task", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Duration of text generation calls in seconds, retries included.",
			Buckets:   []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"task"}),
	}

	reg.MustRegister(m.Calls, m.Duration)
	return m
}

func (m *GenerationMetrics) Observe(task string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.Calls.WithLabelValues(task, outcome).Inc()
	m.Duration.WithLabelValues(task).Observe(time.Since(started).Seconds())
}
