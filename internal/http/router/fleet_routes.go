package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/minimalapi/internal/authz"
)

func registerFleetRoutes(r chi.Router, d Deps, requireOp func(authz.Operation) func(http.Handler) http.Handler) {
	c := d.Controllers.Vehicles

	r.Route("/veiculos", func(r chi.Router) {
		r.With(requireOp(authz.OpCreateVehicle)).Post("/", c.Create)
		r.With(requireOp(authz.OpListVehicles)).Get("/", c.List)
		r.With(requireOp(authz.OpGetVehicle)).Get("/{id}", c.Get)
		r.With(requireOp(authz.OpUpdateVehicle)).Put("/{id}", c.Update)
		r.With(requireOp(authz.OpDeleteVehicle)).Delete("/{id}", c.Delete)
	})
}
