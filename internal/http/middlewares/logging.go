package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
)

// WithLogging registra cada request usando el logger singleton con campos estructurados.
// También inyecta un logger "scoped" en el contexto con request_id, method, path.
//
// Ejemplo de log (prod):
//
//	{"level":"info","msg":"request completed","request_id":"4f1c...","method":"GET","path":"/veiculos","route":"/veiculos","status":200,"bytes":256,"duration_ms":3}
func WithLogging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := GetRequestID(r.Context())
			if requestID == "" {
				requestID = w.Header().Get("X-Request-ID")
			}

			reqLog := logger.L().With(
				logger.RequestID(requestID),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
			)
			ctx := logger.ToContext(r.Context(), reqLog)

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			fields := []logger.Field{
				logger.Status(rec.status),
				logger.Bytes(rec.bytes),
				logger.DurationMs(time.Since(start).Milliseconds()),
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				fields = append(fields, logger.Route(rc.RoutePattern()))
			}

			if rec.status >= http.StatusInternalServerError {
				reqLog.Warn("request completed", fields...)
				return
			}
			reqLog.Info("request completed", fields...)
		})
	}
}
