// Package fleet contiene los DTOs de /veiculos.
package fleet

import "github.com/dropDatabas3/minimalapi/internal/domain/repository"

// VehicleRequest es el cuerpo de POST y PUT /veiculos.
type VehicleRequest struct {
	Nome  string `json:"nome"`
	Marca string `json:"marca"`
	Ano   int    `json:"ano"`
}

func (r VehicleRequest) Input() repository.VehicleInput {
	return repository.VehicleInput{Name: r.Nome, Brand: r.Marca, Year: r.Ano}
}

type VehicleResponse struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Marca string `json:"marca"`
	Ano   int    `json:"ano"`
}

func FromVehicle(v repository.Vehicle) VehicleResponse {
	return VehicleResponse{ID: v.ID, Nome: v.Name, Marca: v.Brand, Ano: v.Year}
}
