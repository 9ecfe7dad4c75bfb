// Package account contiene los DTOs de /administradores.
package account

import "github.com/dropDatabas3/minimalapi/internal/domain/repository"

// LoginRequest es el cuerpo de POST /administradores/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse: token vacío si la emisión está deshabilitada.
type LoginResponse struct {
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
	Token  string `json:"token"`
}

// AdministratorRequest es el cuerpo de POST /administradores.
// Perfil ausente o desconocido se guarda como Editor.
type AdministratorRequest struct {
	Email  string `json:"email"`
	Senha  string `json:"senha"`
	Perfil string `json:"perfil"`
}

// AdministratorResponse nunca incluye la senha.
type AdministratorResponse struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
}

func FromAdministrator(a repository.Administrator) AdministratorResponse {
	return AdministratorResponse{ID: a.ID, Email: a.Email, Perfil: a.Role.String()}
}
