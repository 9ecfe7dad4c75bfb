// Package services agrupa los services HTTP.
// Es el composition root de services: main arma Deps y llama a New.
package services

import (
	"time"

	"github.com/dropDatabas3/minimalapi/internal/http/services/account"
	"github.com/dropDatabas3/minimalapi/internal/http/services/fleet"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/security/password"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	// ─── Infraestructura ───
	Store     store.AdapterConnection
	Tokens    jwtx.TokenService
	Passwords password.Scheme // nil = plain

	// Now fija el reloj de validación de año (nil = time.Now).
	Now func() time.Time
}

// Services agrupa todos los services por dominio.
type Services struct {
	Account account.AccountService
	Fleet   fleet.FleetService
}

// New crea todos los services.
func New(d Deps) Services {
	return Services{
		Account: account.NewAccountService(d.Store.Administrators(), d.Tokens, d.Passwords),
		Fleet:   fleet.NewFleetService(d.Store.Vehicles(), d.Now),
	}
}
