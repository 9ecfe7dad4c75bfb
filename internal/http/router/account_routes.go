package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/minimalapi/internal/authz"
	mw "github.com/dropDatabas3/minimalapi/internal/http/middlewares"
)

func registerAccountRoutes(r chi.Router, d Deps, requireOp func(authz.Operation) func(http.Handler) http.Handler) {
	c := d.Controllers.Administrators

	loginLimit := mw.WithRateLimit(mw.RateLimitConfig{
		Limiter: d.LoginLimiter,
		KeyFunc: mw.IPOnlyRateKey,
		Metrics: d.Metrics,
	})

	r.Route("/administradores", func(r chi.Router) {
		r.With(loginLimit, requireOp(authz.OpLogin)).Post("/login", c.Login)

		r.With(requireOp(authz.OpListAdministrators)).Get("/", c.List)
		r.With(requireOp(authz.OpCreateAdministrator)).Post("/", c.Create)
		r.With(requireOp(authz.OpGetAdministrator)).Get("/{id}", c.Get)
	})
}
