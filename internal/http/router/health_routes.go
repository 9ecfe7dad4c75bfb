package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/minimalapi/internal/authz"
)

// registerHealthRoutes registra /, /healthz, /readyz y /metrics. Todas públicas.
func registerHealthRoutes(r chi.Router, d Deps, requireOp func(authz.Operation) func(http.Handler) http.Handler) {
	c := d.Controllers.Health

	r.With(requireOp(authz.OpHome)).Get("/", c.Home)
	r.Get("/healthz", c.Healthz)
	r.Get("/readyz", c.Readyz)

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
}
