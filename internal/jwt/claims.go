package jwt

import (
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/minimalapi/internal/domain/types"
)

// SessionClaims son los claims del token de sesión de un administrador.
// No se persisten: la validez depende solo de la firma y de exp.
type SessionClaims struct {
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
	jwtv5.RegisteredClaims
}

// HasRole retorna true si el perfil del token está en roles.
func (c *SessionClaims) HasRole(roles ...types.Role) bool {
	if c == nil {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
