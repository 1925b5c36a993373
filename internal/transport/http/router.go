// Package httptransport assembles the public HTTP surface of the service.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"patient-intake/internal/platform/middleware"
	"patient-intake/pkg/platform/httputil"
)

// HealthChecker reports whether a dependency is reachable. A nil checker is
// skipped.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Mountable is implemented by module handlers that attach their own routes.
type Mountable interface {
	Register(r chi.Router)
}

// RouterOptions collects everything the router wires together.
type RouterOptions struct {
	Logger   *slog.Logger
	Handlers []Mountable
	Redis    HealthChecker
}

// NewRouter builds the chi router with shared middleware, module routes, and
// the operational endpoints.
func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.RequestLogger(opts.Logger))

	for _, h := range opts.Handlers {
		h.Register(r)
	}

	r.Get("/healthz", handleHealth(opts.Redis))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func handleHealth(redis HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok"}

		if redis != nil {
			resp.Checks = map[string]string{"redis": "ok"}
			if err := redis.Health(r.Context()); err != nil {
				resp.Status = "degraded"
				resp.Checks["redis"] = "unreachable"
			}
		}

		// Degraded dependencies are survivable; the form still works.
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
