// Package router arma el árbol de rutas chi y sus middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dropDatabas3/minimalapi/internal/authz"
	"github.com/dropDatabas3/minimalapi/internal/http/controllers"
	httperrors "github.com/dropDatabas3/minimalapi/internal/http/errors"
	mw "github.com/dropDatabas3/minimalapi/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/metrics"
	"github.com/dropDatabas3/minimalapi/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	Controllers *controllers.Controllers

	Tokens  jwtx.TokenService
	Policy  authz.Policy // nil = authz.RolePolicy{}
	Metrics *metrics.Metrics

	// LoginLimiter limita POST /administradores/login por IP. nil = sin límite.
	LoginLimiter rate.Limiter
}

// New crea el handler raíz.
//
// Orden de middlewares globales: recover -> request id -> logging -> métricas -> auth.
// La autorización es por ruta (requireOp), porque depende de la operación.
func New(d Deps) http.Handler {
	if d.Policy == nil {
		d.Policy = authz.RolePolicy{}
	}

	r := chi.NewRouter()
	r.Use(
		mw.WithRecover(),
		middleware.StripSlashes,
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithMetrics(d.Metrics),
		mw.WithAuth(d.Tokens),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	requireOp := func(op authz.Operation) func(http.Handler) http.Handler {
		return mw.RequireOperation(d.Policy, op, d.Metrics)
	}

	registerHealthRoutes(r, d, requireOp)
	registerAccountRoutes(r, d, requireOp)
	registerFleetRoutes(r, d, requireOp)

	return r
}
