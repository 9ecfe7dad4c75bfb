package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/minimalapi/internal/authz"
	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
	"github.com/dropDatabas3/minimalapi/internal/rate"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestChainOrder(t *testing.T) {
	var got []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = append(got, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(noContent, mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestWithRequestID(t *testing.T) {
	var seen string
	h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}), WithRequestID())

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(rec, r)
	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, seen, 36)
	require.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func newIssuer() *jwtx.Issuer {
	return jwtx.NewIssuer("middleware-secret")
}

func tokenFor(t *testing.T, iss *jwtx.Issuer, role types.Role) string {
	t.Helper()
	tk, err := iss.Issue(repository.Administrator{ID: 1, Email: "x@y.com", Role: role})
	require.NoError(t, err)
	return tk
}

func TestRequireOperation(t *testing.T) {
	iss := newIssuer()
	h := Chain(noContent, WithAuth(iss), RequireOperation(authz.RolePolicy{}, authz.OpDeleteVehicle, nil))

	serve := func(auth string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/veiculos/1", nil)
		if auth != "" {
			r.Header.Set("Authorization", auth)
		}
		h.ServeHTTP(rec, r)
		return rec
	}

	rec := serve("")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, `Bearer realm="api"`, rec.Header().Get("WWW-Authenticate"))

	rec = serve("Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)

	rec = serve("Basic dXNlcjpwYXNz")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve("Bearer " + tokenFor(t, iss, types.RoleEditor))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve("bearer " + tokenFor(t, iss, types.RoleAdmin))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPublicOperationIgnoresBadToken(t *testing.T) {
	h := Chain(noContent, WithAuth(newIssuer()), RequireOperation(authz.RolePolicy{}, authz.OpLogin, nil))
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/administradores/login", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUnknownOperationDeniesEveryone(t *testing.T) {
	iss := newIssuer()
	h := Chain(noContent, WithAuth(iss), RequireOperation(authz.RolePolicy{}, authz.Operation("vehicles.remove"), nil))

	for _, auth := range []string{"", "Bearer " + tokenFor(t, iss, types.RoleAdmin)} {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/veiculos/1", nil)
		if auth != "" {
			r.Header.Set("Authorization", auth)
		}
		h.ServeHTTP(rec, r)
		require.Equal(t, http.StatusForbidden, rec.Code, auth)
	}
}

func TestWithAuthPutsClaimsInContext(t *testing.T) {
	iss := newIssuer()
	var claims *jwtx.SessionClaims
	h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		claims = GetClaims(r.Context())
	}), WithAuth(iss))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tokenFor(t, iss, types.RoleEditor))
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.NotNil(t, claims)
	require.Equal(t, "x@y.com", claims.Email)
	require.Equal(t, types.RoleEditor, claims.Role)
}

func TestWithRateLimit(t *testing.T) {
	l := rate.NewMemoryLimiter(2, time.Minute)
	h := Chain(noContent, WithRateLimit(RateLimitConfig{Limiter: l, KeyFunc: IPOnlyRateKey}))

	serve := func(ip string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/administradores/login", nil)
		r.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		h.ServeHTTP(rec, r)
		return rec
	}

	require.Equal(t, http.StatusNoContent, serve("1.1.1.1").Code)
	rec := serve("1.1.1.1")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serve("1.1.1.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	require.Equal(t, http.StatusNoContent, serve("2.2.2.2").Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (rate.Result, error) {
	return rate.Result{}, context.DeadlineExceeded
}

func TestWithRateLimitFailsOpen(t *testing.T) {
	h := Chain(noContent, WithRateLimit(RateLimitConfig{Limiter: failingLimiter{}}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWithRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), WithRecover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithLoggingRecordsRoute(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	r := chi.NewRouter()
	r.Use(WithRequestID(), WithLogging())
	r.Get("/veiculos/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/veiculos/7", nil))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.Equal(t, "/veiculos/7", fields["path"])
	require.Equal(t, "/veiculos/{id}", fields["route"])
	require.NotEmpty(t, fields["request_id"])
}
