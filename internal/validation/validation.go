// Package validation acumula errores de campo para las escrituras de la API.
//
// Las reglas nunca cortan en el primer error: el cliente recibe la lista
// completa de mensajes en el orden en que se evaluaron.
package validation

import "strings"

// Mensajes expuestos al cliente. Son parte del contrato de la API.
const (
	MsgAdminEmailRequired    = "O email do administrador é obrigatório."
	MsgAdminPasswordRequired = "A senha do administrador é obrigatória."
	MsgAdminRoleRequired     = "O perfil do administrador é obrigatório."
	MsgVehicleNameRequired   = "O nome do veículo é obrigatório."
	MsgVehicleBrandRequired  = "A marca do veículo é obrigatória."
	MsgVehicleYearRange      = "O ano do veículo deve ser entre 1900 e o ano atual."
)

// MinVehicleYear es el primer año aceptado para un vehículo.
const MinVehicleYear = 1900

// Errors es el resultado de una validación. Vacío significa válido.
type Errors struct {
	Messages []string `json:"messages"`
}

func (e *Errors) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Add agrega un mensaje.
func (e *Errors) Add(msg string) {
	e.Messages = append(e.Messages, msg)
}

// Check agrega msg cuando ok es false.
func (e *Errors) Check(ok bool, msg string) {
	if !ok {
		e.Add(msg)
	}
}

// Empty retorna true si no hay mensajes.
func (e *Errors) Empty() bool { return e == nil || len(e.Messages) == 0 }

// Err retorna nil si no hubo errores, o el propio *Errors.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Required retorna true si s tiene algún carácter visible.
func Required(s string) bool { return strings.TrimSpace(s) != "" }

// Vehicle valida los campos de un vehículo contra el año actual.
func Vehicle(name, brand string, year, currentYear int) error {
	var errs Errors
	errs.Check(Required(name), MsgVehicleNameRequired)
	errs.Check(Required(brand), MsgVehicleBrandRequired)
	errs.Check(year >= MinVehicleYear && year <= currentYear, MsgVehicleYearRange)
	return errs.Err()
}

// Administrator valida email, senha y perfil presentes.
// Un perfil presente pero desconocido no es error: se resuelve como Editor.
func Administrator(email, password, role string) error {
	var errs Errors
	errs.Check(Required(email), MsgAdminEmailRequired)
	errs.Check(Required(password), MsgAdminPasswordRequired)
	errs.Check(Required(role), MsgAdminRoleRequired)
	return errs.Err()
}
