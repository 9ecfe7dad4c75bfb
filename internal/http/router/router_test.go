package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/minimalapi/internal/http/controllers"
	"github.com/dropDatabas3/minimalapi/internal/http/services"
	"github.com/dropDatabas3/minimalapi/internal/http/services/account"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/metrics"
	"github.com/dropDatabas3/minimalapi/internal/rate"
	"github.com/dropDatabas3/minimalapi/internal/store/adapters/memory"
	"github.com/dropDatabas3/minimalapi/internal/validation"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T, limiter rate.Limiter) *testAPI {
	t.Helper()

	conn := memory.New()
	issuer := jwtx.NewIssuer("router-test-secret")
	svcs := services.New(services.Deps{
		Store:  conn,
		Tokens: issuer,
		Now:    func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) },
	})

	ctx := context.Background()
	_, err := svcs.Account.Create(ctx, account.CreateInput{Email: "adm@teste.com", Password: "123456", Role: "Adm"})
	require.NoError(t, err)
	_, err = svcs.Account.Create(ctx, account.CreateInput{Email: "editor@teste.com", Password: "654321", Role: "Editor"})
	require.NoError(t, err)

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	ctrls := controllers.New(svcs, controllers.Deps{Store: conn, Version: "test", Metrics: m})
	return &testAPI{t: t, handler: New(Deps{
		Controllers:  ctrls,
		Tokens:       issuer,
		Metrics:      m,
		LoginLimiter: limiter,
	})}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(b)
	}
	r := httptest.NewRequest(method, path, rd)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	return rec
}

func (a *testAPI) login(email, senha string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/administradores/login", "", map[string]string{"email": email, "senha": senha})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Email  string `json:"email"`
		Perfil string `json:"perfil"`
		Token  string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(a.t, email, resp.Email)
	require.NotEmpty(a.t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHomeIsPublic(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	require.NotEmpty(t, body["mensagem"])
	require.Equal(t, "/swagger", body["doc"])
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHealthEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthz", "", nil).Code)

	rec := api.do(http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "memory", decode[map[string]string](t, rec)["store"])

	rec = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, nil)
	api.login("adm@teste.com", "123456")

	rec := api.do(http.MethodPost, "/administradores/login", "", map[string]string{"email": "adm@teste.com", "senha": "x"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/administradores/login", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdministratorsRequireAdmin(t *testing.T) {
	api := newTestAPI(t, nil)
	adm := api.login("adm@teste.com", "123456")
	editor := api.login("editor@teste.com", "654321")

	rec := api.do(http.MethodGet, "/administradores", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/administradores", "garbage", nil).Code)
	require.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/administradores", editor, nil).Code)

	rec = api.do(http.MethodGet, "/administradores?pagina=1", adm, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 2)
	require.Equal(t, "Admin", list[0]["perfil"])
	require.NotContains(t, list[0], "senha")

	require.Equal(t, "[]\n", api.do(http.MethodGet, "/administradores?pagina=2", adm, nil).Body.String())

	rec = api.do(http.MethodGet, "/administradores/2", adm, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "editor@teste.com", decode[map[string]any](t, rec)["email"])

	require.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/administradores/99", adm, nil).Code)
	require.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/administradores/1", editor, nil).Code)
}

func TestCreateAdministrator(t *testing.T) {
	api := newTestAPI(t, nil)
	adm := api.login("adm@teste.com", "123456")

	rec := api.do(http.MethodPost, "/administradores/", adm, map[string]string{"email": "novo@teste.com", "senha": "abc", "perfil": "Gerente"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "/administradores/3", rec.Header().Get("Location"))
	require.Equal(t, "Editor", decode[map[string]any](t, rec)["perfil"])

	rec = api.do(http.MethodPost, "/administradores", adm, map[string]string{"email": "novo@teste.com", "senha": "abc", "perfil": "Adm"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPost, "/administradores", adm, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{
		validation.MsgAdminEmailRequired,
		validation.MsgAdminPasswordRequired,
		validation.MsgAdminRoleRequired,
	}, decode[validation.Errors](t, rec).Messages)

	rec = api.do(http.MethodPost, "/administradores", adm, map[string]string{"email": "sem@perfil.com", "senha": "abc"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{validation.MsgAdminRoleRequired}, decode[validation.Errors](t, rec).Messages)

	api.login("novo@teste.com", "abc")
}

func TestVehicleLifecycle(t *testing.T) {
	api := newTestAPI(t, nil)
	adm := api.login("adm@teste.com", "123456")
	editor := api.login("editor@teste.com", "654321")

	require.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/veiculos", "", nil).Code)

	rec := api.do(http.MethodPost, "/veiculos", editor, map[string]any{"nome": "Fusca", "marca": "Volkswagen", "ano": 1970})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "/veiculos/1", rec.Header().Get("Location"))

	rec = api.do(http.MethodPost, "/veiculos", editor, map[string]any{"nome": "Gol", "marca": "Volkswagen", "ano": 2010})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = api.do(http.MethodPost, "/veiculos", adm, map[string]any{"nome": "Uno", "marca": "Fiat", "ano": 1990})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPost, "/veiculos", editor, map[string]any{"nome": "", "marca": "", "ano": 2030})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{
		validation.MsgVehicleNameRequired,
		validation.MsgVehicleBrandRequired,
		validation.MsgVehicleYearRange,
	}, decode[validation.Errors](t, rec).Messages)

	rec = api.do(http.MethodGet, "/veiculos?marca=volks", editor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vw := decode[[]map[string]any](t, rec)
	require.Len(t, vw, 2)
	require.Equal(t, "Fusca", vw[0]["nome"])

	rec = api.do(http.MethodGet, "/veiculos?nome=o&marca=VOLKS&pagina=abc", editor, nil)
	require.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = api.do(http.MethodGet, "/veiculos/3", editor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1990, decode[map[string]any](t, rec)["ano"])

	require.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/veiculos/abc", editor, nil).Code)

	update := map[string]any{"nome": "Uno Mille", "marca": "Fiat", "ano": 1995}
	require.Equal(t, http.StatusForbidden, api.do(http.MethodPut, "/veiculos/3", editor, update).Code)
	require.Equal(t, http.StatusNotFound, api.do(http.MethodPut, "/veiculos/77", adm, map[string]any{}).Code)

	rec = api.do(http.MethodPut, "/veiculos/3", adm, update)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Uno Mille", decode[map[string]any](t, rec)["nome"])

	require.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, "/veiculos/3", editor, nil).Code)
	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/veiculos/3", adm, nil).Code)
	require.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/veiculos/3", adm, nil).Code)
	require.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/veiculos/3", adm, nil).Code)
}

func TestVehiclesHugePage(t *testing.T) {
	api := newTestAPI(t, nil)
	adm := api.login("adm@teste.com", "123456")
	rec := api.do(http.MethodPost, "/veiculos", adm, map[string]any{"nome": "Ônix", "marca": "Chevrolet", "ano": 2020})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, page := range []string{"922337203685477582", "99999999999999999999"} {
		rec = api.do(http.MethodGet, "/veiculos?pagina="+page, adm, nil)
		require.Equal(t, http.StatusOK, rec.Code, page)
		require.Equal(t, "[]\n", rec.Body.String(), page)
	}

	rec = api.do(http.MethodGet, "/veiculos?nome=%C3%B4nix", adm, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]map[string]any](t, rec), 1)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/nada", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "ROUTE_NOT_FOUND", decode[map[string]string](t, rec)["code"])

	require.Equal(t, http.StatusMethodNotAllowed, api.do(http.MethodPatch, "/veiculos/1", "", nil).Code)
}

func TestLoginRateLimit(t *testing.T) {
	api := newTestAPI(t, rate.NewMemoryLimiter(2, time.Minute))
	api.login("adm@teste.com", "123456")
	api.login("adm@teste.com", "123456")

	rec := api.do(http.MethodPost, "/administradores/login", "", map[string]string{"email": "adm@teste.com", "senha": "123456"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// el límite es solo para login
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/", "", nil).Code)
}
