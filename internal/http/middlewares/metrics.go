package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/minimalapi/internal/metrics"
)

// WithMetrics instrumenta requests HTTP (contadores, latencia, inflight).
// La etiqueta de ruta es el patrón de chi para no explotar la cardinalidad con ids.
func WithMetrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.RequestStarted()

			rec := newStatusRecorder(w)
			defer func() {
				route := ""
				if rc := chi.RouteContext(r.Context()); rc != nil {
					route = rc.RoutePattern()
				}
				m.RequestFinished(strings.ToUpper(r.Method), route, rec.status, time.Since(start))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
