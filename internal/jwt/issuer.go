// Package jwt emite y valida los tokens de sesión (HS256) de los administradores.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
)

// DefaultTTL es la vida útil de un token de sesión.
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalidToken agrupa firma inválida, token malformado, algoritmo incorrecto o expiración.
	ErrInvalidToken = errors.New("invalid_token")

	errNoSecret = errors.New("jwt secret not configured")
)

// TokenService emite y valida tokens de sesión.
type TokenService interface {
	Issue(admin repository.Administrator) (string, error)
	Validate(token string) (*SessionClaims, error)
}

// Issuer firma tokens con un secreto simétrico único por proceso.
type Issuer struct {
	secret []byte
	TTL    time.Duration
	// Now permite fijar el reloj en tests.
	Now func() time.Time
}

// NewIssuer crea un Issuer con TTL de 24h.
// Un secreto vacío es aceptado: Issue devuelve "" y Validate rechaza todo.
func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		TTL:    DefaultTTL,
		Now:    time.Now,
	}
}

// Enabled indica si hay secreto configurado.
func (i *Issuer) Enabled() bool { return len(i.secret) > 0 }

func (i *Issuer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

// Issue firma {email, role, exp = now + TTL}.
// Sin secreto retorna "" y nil: la autenticación queda deshabilitada, no es un error.
func (i *Issuer) Issue(admin repository.Administrator) (string, error) {
	if !i.Enabled() {
		return "", nil
	}
	ttl := i.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	claims := SessionClaims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ExpiresAt: jwtv5.NewNumericDate(i.now().Add(ttl)),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

// Validate verifica firma HS256 y exp. No chequea iss ni aud.
func (i *Issuer) Validate(token string) (*SessionClaims, error) {
	parser := jwtv5.NewParser(
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(i.now),
	)

	claims := &SessionClaims{}
	tk, err := parser.ParseWithClaims(token, claims, i.keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tk.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return claims, nil
}

func (i *Issuer) keyfunc(t *jwtv5.Token) (any, error) {
	if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	if !i.Enabled() {
		return nil, errNoSecret
	}
	return i.secret, nil
}

var _ TokenService = (*Issuer)(nil)
