package middlewares

import (
	"context"

	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
)

type ctxKey string

const (
	// ctxClaimsKey guarda los claims de sesión validados
	ctxClaimsKey ctxKey = "claims"
	// ctxAuthErrKey guarda el error de un bearer presente pero inválido
	ctxAuthErrKey ctxKey = "auth_err"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// WithClaims inyecta claims en el contexto
func WithClaims(ctx context.Context, claims *jwtx.SessionClaims) context.Context {
	return context.WithValue(ctx, ctxClaimsKey, claims)
}

func setAuthError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, ctxAuthErrKey, err)
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetClaims obtiene los claims del contexto.
// Retorna nil si no hay token válido.
func GetClaims(ctx context.Context) *jwtx.SessionClaims {
	if c, ok := ctx.Value(ctxClaimsKey).(*jwtx.SessionClaims); ok {
		return c
	}
	return nil
}

// getAuthError retorna el error de validación del bearer, si hubo uno.
func getAuthError(ctx context.Context) error {
	if err, ok := ctx.Value(ctxAuthErrKey).(error); ok {
		return err
	}
	return nil
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxRequestIDKey).(string); ok {
		return s
	}
	return ""
}
