// Package health contiene los DTOs de /, /healthz y /readyz.
package health

// HomeResponse es la respuesta pública de GET /.
type HomeResponse struct {
	Mensagem string `json:"mensagem"`
	Doc      string `json:"doc"`
}

// HealthResponse: status es "ok", "ready" o "unavailable".
type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store,omitempty"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}
