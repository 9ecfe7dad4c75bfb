// Package fleet contiene el controller de /veiculos.
package fleet

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	dto "github.com/dropDatabas3/minimalapi/internal/http/dto/fleet"
	httperrors "github.com/dropDatabas3/minimalapi/internal/http/errors"
	"github.com/dropDatabas3/minimalapi/internal/http/helpers"
	svc "github.com/dropDatabas3/minimalapi/internal/http/services/fleet"
)

// VehiclesController maneja las rutas /veiculos
type VehiclesController struct {
	service svc.FleetService
}

func NewVehiclesController(service svc.FleetService) *VehiclesController {
	return &VehiclesController{service: service}
}

func notFound(id int64) error {
	return httperrors.ErrNotFound.WithDetail(fmt.Sprintf("Veículo com ID %d não encontrado.", id))
}

// writeErr traduce NotFound con el id en el detalle; el resto va directo a WriteError.
func writeErr(w http.ResponseWriter, id int64, err error) {
	if repository.IsNotFound(err) {
		httperrors.WriteError(w, notFound(id))
		return
	}
	httperrors.WriteError(w, err)
}

// Create maneja POST /veiculos
func (c *VehiclesController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	v, err := c.service.Create(r.Context(), req.Input())
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/veiculos/%d", v.ID))
	helpers.WriteJSON(w, http.StatusCreated, dto.FromVehicle(*v))
}

// List maneja GET /veiculos?pagina=&nome=&marca=
func (c *VehiclesController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vehicles, err := c.service.List(r.Context(), repository.VehicleFilter{
		Name:  strings.TrimSpace(q.Get("nome")),
		Brand: strings.TrimSpace(q.Get("marca")),
		Page:  helpers.PageParam(r),
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, dto.FromVehicle(v))
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Get maneja GET /veiculos/{id}
func (c *VehiclesController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.IDParam(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return
	}

	v, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, id, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromVehicle(*v))
}

// Update maneja PUT /veiculos/{id}
func (c *VehiclesController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.IDParam(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return
	}

	var req dto.VehicleRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	v, err := c.service.Update(r.Context(), id, req.Input())
	if err != nil {
		writeErr(w, id, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromVehicle(*v))
}

// Delete maneja DELETE /veiculos/{id}
func (c *VehiclesController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.IDParam(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		writeErr(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
