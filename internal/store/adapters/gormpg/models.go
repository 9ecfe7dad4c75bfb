package gormpg

import (
	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
)

type adminModel struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Email    string `gorm:"column:email;size:255;not null;uniqueIndex:administradores_email_key"`
	Password string `gorm:"column:senha;size:255;not null"`
	Role     string `gorm:"column:perfil;size:10;not null"`
}

func (adminModel) TableName() string {
	return "administradores"
}

func (m adminModel) toEntity() repository.Administrator {
	return repository.Administrator{
		ID:       m.ID,
		Email:    m.Email,
		Password: m.Password,
		Role:     types.Role(m.Role),
	}
}

type vehicleModel struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:nome;size:150;not null"`
	Brand string `gorm:"column:marca;size:100;not null"`
	Year  int    `gorm:"column:ano;not null"`
}

func (vehicleModel) TableName() string {
	return "veiculos"
}

func (m vehicleModel) toEntity() repository.Vehicle {
	return repository.Vehicle{ID: m.ID, Name: m.Name, Brand: m.Brand, Year: m.Year}
}
