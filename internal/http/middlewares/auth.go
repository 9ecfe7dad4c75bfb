package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/minimalapi/internal/authz"
	httperrors "github.com/dropDatabas3/minimalapi/internal/http/errors"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/metrics"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
)

// bearerToken extrae el token de "Authorization: Bearer <token>". "" si no hay.
func bearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
		return ""
	}
	return strings.TrimSpace(ah[len("Bearer "):])
}

// WithAuth valida el bearer si está presente y guarda los claims en el contexto.
// No rechaza nada: la decisión queda para RequireOperation, que conoce la operación.
func WithAuth(tokens jwtx.TokenService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				logger.From(r.Context()).Debug("bearer rejected", logger.Err(err))
				next.ServeHTTP(w, r.WithContext(setAuthError(r.Context(), err)))
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = logger.Enrich(ctx, logger.Email(claims.Email), logger.Role(claims.Role.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOperation aplica la política sobre los perfiles requeridos por op.
// Unauthenticated responde 401 con WWW-Authenticate; Forbidden responde 403.
func RequireOperation(policy authz.Policy, op authz.Operation, m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := authz.AuthorizeOperation(policy, GetClaims(r.Context()), op)
			m.AuthzDecision(string(op), decision.String())

			switch decision {
			case authz.Allow:
				next.ServeHTTP(w, r)
				return
			case authz.Forbidden:
				logger.From(r.Context()).Info("operation forbidden",
					logger.Operation(string(op)),
					logger.Decision(decision.String()),
				)
				httperrors.WriteError(w, httperrors.ErrForbidden)
				return
			}

			logger.From(r.Context()).Debug("operation requires authentication",
				logger.Operation(string(op)),
				logger.Decision(decision.String()),
			)
			if err := getAuthError(r.Context()); err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				httperrors.WriteError(w, httperrors.ErrTokenInvalid.WithCause(err))
				return
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			httperrors.WriteError(w, httperrors.ErrUnauthorized)
		})
	}
}
