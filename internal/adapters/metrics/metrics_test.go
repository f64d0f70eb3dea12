package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddleware_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/v1/properties/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/v1/properties/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
}

func TestGeocoderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGeocoderMetrics(reg)

	m.ObserveLookup(LookupHit)
	m.ObserveLookup(LookupHit)
	m.ObserveLookup(LookupError)
	m.SetBreakerState(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues(LookupHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(LookupError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState))

	var nilMetrics *GeocoderMetrics
	assert.NotPanics(t, func() { nilMetrics.ObserveLookup(LookupMiss) })
}

func TestGenerationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGenerationMetrics(reg)

	m.Observe("answer", time.Now(), nil)
	m.Observe("answer", time.Now(), errors.New("quota"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("answer", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("answer", "error")))

	var nilMetrics *GenerationMetrics
	assert.NotPanics(t, func() { nilMetrics.Observe("answer", time.Now(), nil) })
}

func TestNewRegistryServesMetrics(t *testing.T) {
	reg := NewRegistry()
	NewGeocoderMetrics(reg).ObserveLookup(LookupMiss)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "property_service_geocoder_lookups_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
