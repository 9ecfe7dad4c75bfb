// Package account contiene el controller de /administradores.
package account

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	dto "github.com/dropDatabas3/minimalapi/internal/http/dto/account"
	httperrors "github.com/dropDatabas3/minimalapi/internal/http/errors"
	"github.com/dropDatabas3/minimalapi/internal/http/helpers"
	svc "github.com/dropDatabas3/minimalapi/internal/http/services/account"
	"github.com/dropDatabas3/minimalapi/internal/metrics"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
)

// AdministratorsController maneja las rutas /administradores
type AdministratorsController struct {
	service svc.AccountService
	metrics *metrics.Metrics
}

// NewAdministratorsController crea el controller. m puede ser nil.
func NewAdministratorsController(service svc.AccountService, m *metrics.Metrics) *AdministratorsController {
	return &AdministratorsController{service: service, metrics: m}
}

// Login maneja POST /administradores/login
func (c *AdministratorsController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	res, err := c.service.Login(ctx, req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, svc.ErrInvalidCredentials) {
			c.metrics.Login(false)
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
			return
		}
		logger.From(ctx).Error("login failed",
			logger.Layer("controller"),
			logger.Op("AdministratorsController.Login"),
			logger.Err(err),
		)
		httperrors.WriteError(w, err)
		return
	}

	c.metrics.Login(true)
	helpers.WriteJSON(w, http.StatusOK, dto.LoginResponse{
		Email:  res.Administrator.Email,
		Perfil: res.Administrator.Role.String(),
		Token:  res.Token,
	})
}

// List maneja GET /administradores?pagina=
func (c *AdministratorsController) List(w http.ResponseWriter, r *http.Request) {
	admins, err := c.service.List(r.Context(), helpers.PageParam(r))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	resp := make([]dto.AdministratorResponse, 0, len(admins))
	for _, a := range admins {
		resp = append(resp, dto.FromAdministrator(a))
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Get maneja GET /administradores/{id}
func (c *AdministratorsController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.IDParam(r)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrNotFound)
		return
	}

	admin, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		if repository.IsNotFound(err) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail(
				fmt.Sprintf("Administrador com ID %d não encontrado.", id)))
			return
		}
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromAdministrator(*admin))
}

// Create maneja POST /administradores
func (c *AdministratorsController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AdministratorRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	admin, err := c.service.Create(r.Context(), svc.CreateInput{
		Email:    req.Email,
		Password: req.Senha,
		Role:     req.Perfil,
	})
	if err != nil {
		if repository.IsConflict(err) {
			httperrors.WriteError(w, httperrors.ErrEmailAlreadyInUse)
			return
		}
		httperrors.WriteError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/administradores/%d", admin.ID))
	helpers.WriteJSON(w, http.StatusCreated, dto.FromAdministrator(*admin))
}
