// Package types define tipos de dominio compartidos entre paquetes.
package types

import "strings"

// Role es el perfil de un administrador. Conjunto cerrado.
type Role string

const (
	// RoleAdmin tiene acceso completo (incluye gestión de administradores).
	RoleAdmin Role = "Admin"
	// RoleEditor puede crear, listar y leer vehículos.
	RoleEditor Role = "Editor"
)

// Roles retorna los perfiles válidos en orden estable.
func Roles() []Role { return []Role{RoleAdmin, RoleEditor} }

// IsValid retorna true si el perfil pertenece al conjunto cerrado.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole normaliza un perfil recibido por la API.
// Acepta "Admin" y la forma corta "Adm" (case-insensitive) como RoleAdmin.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adm", "admin":
		return RoleAdmin, true
	case "editor":
		return RoleEditor, true
	}
	return "", false
}
