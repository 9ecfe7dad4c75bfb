// Package authz decide si unos claims de sesión pueden ejecutar una operación.
package authz

import (
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
)

// Decision es el resultado de una autorización.
type Decision int

const (
	Allow Decision = iota
	// Unauthenticated: la operación requiere perfil y no hay token válido (401).
	Unauthenticated
	// Forbidden: token válido con perfil insuficiente (403).
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Policy decide acceso a partir de claims (nil si no hay token) y perfiles requeridos.
type Policy interface {
	Authorize(claims *jwtx.SessionClaims, required []types.Role) Decision
}

// RolePolicy permite si el perfil del token está en el conjunto requerido.
// Un conjunto vacío siempre permite.
type RolePolicy struct{}

func (RolePolicy) Authorize(claims *jwtx.SessionClaims, required []types.Role) Decision {
	if len(required) == 0 {
		return Allow
	}
	if claims == nil {
		return Unauthenticated
	}
	if claims.HasRole(required...) {
		return Allow
	}
	return Forbidden
}

// AuthorizeOperation resuelve los perfiles de op en la tabla y delega en p.
// Una operación desconocida es Forbidden para cualquier sesión.
func AuthorizeOperation(p Policy, claims *jwtx.SessionClaims, op Operation) Decision {
	required, ok := RequiredRoles(op)
	if !ok {
		return Forbidden
	}
	return p.Authorize(claims, required)
}
