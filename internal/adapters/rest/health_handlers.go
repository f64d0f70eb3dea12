package rest

import (
	"context"
	"net/http"
	"property-service/internal/contextkeys"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// Pinger - то, что проверяет /healthz (пул БД)
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Hello обрабатывает GET /api/v1/hello
func (h *HealthHandler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello World!"))
}

// Healthz обрабатывает GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			contextkeys.LoggerFromContext(r.Context()).Error("Health check failed", err, nil)
			WriteJSONError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
