// Package health contiene el controller de home y health checks.
package health

import (
	"context"
	"net/http"
	"time"

	dto "github.com/dropDatabas3/minimalapi/internal/http/dto/health"
	"github.com/dropDatabas3/minimalapi/internal/http/helpers"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
)

const homeMessage = "Bem vindo a API de veículos - Minimal API"

// readyTimeout acota el ping al store en /readyz.
const readyTimeout = 2 * time.Second

// Pinger es el subconjunto del store que usa /readyz.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthController maneja /, /healthz y /readyz.
type HealthController struct {
	store   Pinger
	version string
}

func NewHealthController(store Pinger, version string) *HealthController {
	return &HealthController{store: store, version: version}
}

// Home maneja GET /
func (c *HealthController) Home(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, dto.HomeResponse{Mensagem: homeMessage, Doc: "/swagger"})
}

// Healthz maneja GET /healthz (liveness: no toca el store).
func (c *HealthController) Healthz(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Version: c.version})
}

// Readyz maneja GET /readyz
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ready", Store: c.store.Name(), Version: c.version}
	if err := c.store.Ping(ctx); err != nil {
		logger.From(ctx).Warn("store not ready",
			logger.Layer("controller"),
			logger.Op("HealthController.Readyz"),
			logger.Err(err),
		)
		resp.Status = "unavailable"
		resp.Error = err.Error()
		helpers.WriteJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
