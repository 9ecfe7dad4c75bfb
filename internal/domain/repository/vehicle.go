package repository

import "context"

// Vehicle representa un vehículo de la flota.
type Vehicle struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Year  int    `json:"year"`
}

// VehicleInput contiene los campos editables de un vehículo.
type VehicleInput struct {
	Name  string
	Brand string
	Year  int
}

// VehicleFilter describe una consulta paginada de vehículos.
// Name y Brand son substrings case-insensitive combinados con AND.
// Vacío significa "sin filtro". El filtro se aplica antes de paginar.
type VehicleFilter struct {
	Name  string
	Brand string
	Page  Page
}

// VehicleRepository maneja la persistencia de vehículos.
type VehicleRepository interface {
	// GetByID busca un vehículo por ID.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Vehicle, error)

	// List filtra y pagina en el almacenamiento, en orden de ID ascendente.
	List(ctx context.Context, filter VehicleFilter) ([]Vehicle, error)

	// Create inserta un vehículo y retorna el registro con ID asignado.
	Create(ctx context.Context, input VehicleInput) (*Vehicle, error)

	// Update modifica el vehículo en el lugar.
	// Retorna ErrNotFound si no existe.
	Update(ctx context.Context, id int64, input VehicleInput) (*Vehicle, error)

	// Delete elimina el vehículo.
	// Retorna ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
