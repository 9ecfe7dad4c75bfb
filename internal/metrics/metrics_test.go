package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsRecord(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RequestStarted()
	m.RequestFinished("GET", "/veiculos/{id}", 200, 15*time.Millisecond)
	m.RequestStarted()
	m.RequestFinished("GET", "", 404, time.Millisecond)
	m.AuthzDecision("vehicles.delete", "forbidden")
	m.Login(true)
	m.Login(false)
	m.Login(false)
	m.RateLimited()

	out := scrape(t, m)
	require.Contains(t, out, `http_requests_total{method="GET",route="/veiculos/{id}",status="200"} 1`)
	require.Contains(t, out, `http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	require.Contains(t, out, "http_inflight_requests 0")
	require.Contains(t, out, `authz_decisions_total{decision="forbidden",operation="vehicles.delete"} 1`)
	require.Contains(t, out, `logins_total{result="invalid"} 2`)
	require.Contains(t, out, "rate_limited_requests_total 1")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RequestStarted()
	m.RequestFinished("GET", "/", 200, 0)
	m.AuthzDecision("home", "allow")
	m.Login(true)
	m.RateLimited()
}

func TestDefaultRegistryIncludesRuntime(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	m.Login(true)

	out := scrape(t, m)
	require.Contains(t, out, `logins_total{result="ok"} 1`)
	require.Contains(t, out, "go_goroutines")
}
