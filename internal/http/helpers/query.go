package helpers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
)

// PageParam lee ?pagina=. Ausente o no numérico equivale a la página 1.
// Un número positivo fuera de rango de int va a repository.MaxPage (página vacía).
func PageParam(r *http.Request) repository.Page {
	raw := strings.TrimSpace(r.URL.Query().Get("pagina"))
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && n > 0 {
			return repository.MaxPage
		}
		return 1
	}
	return repository.Page(n).Normalize()
}

// IDParam lee el parámetro de ruta {id}. false si no es un entero.
func IDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
