package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupError = "error"
)

// GeocoderMetrics holds reverse geocoding metrics. A nil *GeocoderMetrics is a no-op.
type GeocoderMetrics struct {
	Lookups      *prometheus.CounterVec
	BreakerState prometheus.Gauge
}

func NewGeocoderMetrics(reg prometheus.Registerer) *GeocoderMetrics {
	m := &GeocoderMetrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "geocoder",
			Name:      "lookups_total",
			Help:      "Reverse geocoding lookups by outcome (hit, miss, error).",
		}, []string{"outcome"}),
		BreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "geocoder",
			Name:      "circuit_breaker_state",
			Help:      "Current geocoder circuit breaker state (0=closed, 1=half-open, 2=open).",
		}),
	}

	reg.MustRegister(m.Lookups, m.BreakerState)
	return m
}

func (m *GeocoderMetrics) ObserveLookup(outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
}

func (m *GeocoderMetrics) SetBreakerState(state float64) {
	if m == nil {
		return
	}
	m.BreakerState.Set(state)
}
