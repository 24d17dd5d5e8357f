package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/intakelog/internal/config"
	"github.com/heartmarshall/intakelog/internal/transport/middleware"
)

// RouterDeps are the handlers and settings the router is assembled from.
type RouterDeps struct {
	Log            *slog.Logger
	Health         *HealthHandler
	Intake         *IntakeHandler
	Metrics        http.Handler
	CORS           config.CORSConfig
	WriteRateLimit int
}

// NewRouter builds the HTTP API: health probes, Prometheus metrics and the
// intake resource. Writes are rate limited per client IP.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.RequestID,
		middleware.Logger(deps.Log),
		middleware.Recovery(deps.Log),
		middleware.CORS(deps.CORS),
	))

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api/intake", func(r chi.Router) {
		r.Get("/", deps.Intake.List)
		r.Get("/total", deps.Intake.Total)

		r.Group(func(r chi.Router) {
			if limit := middleware.RateLimit(deps.WriteRateLimit); limit != nil {
				r.Use(limit)
			}
			r.Post("/", deps.Intake.Add)
			r.Delete("/", deps.Intake.Clear)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})

	return r
}
