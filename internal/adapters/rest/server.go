package rest

import (
	"context"
	"net/http"
	"property-service/internal/adapters/metrics"
	core_port "property-service/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	HTTPMetrics        *metrics.HTTPMetrics
	// MetricsHandler отдает /metrics, nil - маршрут не регистрируется
	MetricsHandler http.Handler
	// Frontend обслуживает все не-API GET запросы
	Frontend http.Handler
}

type Handlers struct {
	Property   *PropertyHandler
	Generation *GenerationHandler
	Health     *HealthHandler
}

func NewRouter(cfg RouterConfig, h Handlers, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger))
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health.Healthz)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/hello", h.Health.Hello)

		r.Route("/properties", func(r chi.Router) {
			r.Post("/", h.Property.AddProperty)
			r.Get("/", h.Property.GetAllProperties)
			r.Post("/by-ids", h.Property.GetPropertiesByIDs)
			r.Get("/{id}", h.Property.GetPropertyByID)
			r.Put("/{id}", h.Property.UpdateProperty)
			r.Delete("/{id}", h.Property.DeleteProperty)
		})
		r.Get("/owners/{owner}/properties", h.Property.GetPropertiesByOwner)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/answer", h.Generation.GetAnswer)
			r.Post("/description", h.Generation.GetDescription)
			r.Post("/comparison", h.Generation.GetComparison)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			WriteJSONError(w, http.StatusNotFound, "Route not found")
		})
	})

	if cfg.Frontend != nil {
		r.Method(http.MethodGet, "/*", cfg.Frontend)
	}

	return r
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string, handler http.Handler, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
