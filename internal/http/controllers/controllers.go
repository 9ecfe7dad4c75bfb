// Package controllers agrupa todos los controllers HTTP.
// Es el composition root de controllers: recibe los services ya armados.
package controllers

import (
	"github.com/dropDatabas3/minimalapi/internal/http/controllers/account"
	"github.com/dropDatabas3/minimalapi/internal/http/controllers/fleet"
	"github.com/dropDatabas3/minimalapi/internal/http/controllers/health"
	"github.com/dropDatabas3/minimalapi/internal/http/services"
	"github.com/dropDatabas3/minimalapi/internal/metrics"
)

// Deps son las dependencias que no vienen de los services.
type Deps struct {
	Store   health.Pinger
	Version string
	Metrics *metrics.Metrics
}

// Controllers agrupa los controllers por dominio.
type Controllers struct {
	Health         *health.HealthController
	Administrators *account.AdministratorsController
	Vehicles       *fleet.VehiclesController
}

// New crea todos los controllers.
func New(s services.Services, d Deps) *Controllers {
	return &Controllers{
		Health:         health.NewHealthController(d.Store, d.Version),
		Administrators: account.NewAdministratorsController(s.Account, d.Metrics),
		Vehicles:       fleet.NewVehiclesController(s.Fleet),
	}
}
