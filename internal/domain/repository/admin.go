package repository

import (
	"context"

	"github.com/dropDatabas3/minimalapi/internal/domain/types"
)

// Administrator representa una cuenta con acceso a la API.
type Administrator struct {
	ID       int64      `json:"id"`
	Email    string     `json:"email"`
	Password string     `json:"-"` // opaco: texto plano o hash según el esquema configurado
	Role     types.Role `json:"role"`
}

// CreateAdministratorInput contiene los datos para crear un administrador.
type CreateAdministratorInput struct {
	Email    string
	Password string
	Role     types.Role
}

// AdministratorRepository maneja la persistencia de administradores.
// Los administradores nunca se eliminan.
type AdministratorRepository interface {
	// GetByID busca un administrador por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Administrator, error)

	// GetByEmail busca un administrador por email (match exacto).
	// Retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*Administrator, error)

	// List retorna una página en el orden nativo del almacenamiento (ID ascendente).
	// Una página fuera de rango retorna un slice vacío.
	List(ctx context.Context, page Page) ([]Administrator, error)

	// Count retorna la cantidad total de administradores.
	Count(ctx context.Context) (int, error)

	// Create inserta un administrador y retorna el registro con ID asignado.
	// Retorna ErrConflict si el email ya existe.
	Create(ctx context.Context, input CreateAdministratorInput) (*Administrator, error)
}
