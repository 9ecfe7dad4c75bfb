// Package errors define los errores HTTP de la API y cómo se serializan.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dropDatabas3/minimalapi/internal/validation"
)

// errorResponse controla exactamente qué campos se envían al cliente.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe la respuesta HTTP de err.
// Un *validation.Errors se escribe con WriteValidation.
func WriteError(w http.ResponseWriter, err error) {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		WriteValidation(w, verrs)
		return
	}

	appErr := FromError(err)
	resp := errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteValidation escribe 400 con la lista completa de mensajes: {"messages": [...]}.
func WriteValidation(w http.ResponseWriter, errs *validation.Errors) {
	body := validation.Errors{Messages: []string{}}
	if errs != nil {
		body.Messages = append(body.Messages, errs.Messages...)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(body)
}
