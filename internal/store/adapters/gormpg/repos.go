package gormpg

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

// ─── AdministratorRepository ───

type adminRepo struct{ db *gorm.DB }

func (r *adminRepo) first(ctx context.Context, query string, arg any) (*repository.Administrator, error) {
	var row adminModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gorm: get administrator: %w", err)
	}
	a := row.toEntity()
	return &a, nil
}

func (r *adminRepo) GetByID(ctx context.Context, id int64) (*repository.Administrator, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*repository.Administrator, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *adminRepo) List(ctx context.Context, page repository.Page) ([]repository.Administrator, error) {
	var rows []adminModel
	err := r.db.WithContext(ctx).
		Order("id").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list administrators: %w", err)
	}
	out := make([]repository.Administrator, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *adminRepo) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&adminModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("gorm: count administrators: %w", err)
	}
	return int(n), nil
}

func (r *adminRepo) Create(ctx context.Context, in repository.CreateAdministratorInput) (*repository.Administrator, error) {
	row := adminModel{Email: in.Email, Password: in.Password, Role: string(in.Role)}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("gorm: insert administrator: %w", err)
	}
	a := row.toEntity()
	return &a, nil
}

// ─── VehicleRepository ───

type vehicleRepo struct{ db *gorm.DB }

// vehicleQuery encadena filtros y paginación; nada se ejecuta hasta Find.
func vehicleQuery(db *gorm.DB, f repository.VehicleFilter) *gorm.DB {
	q := db.Model(&vehicleModel{})
	if f.Name != "" {
		q = q.Where(`nome ILIKE ? ESCAPE '\'`, store.ContainsPattern(f.Name))
	}
	if f.Brand != "" {
		q = q.Where(`marca ILIKE ? ESCAPE '\'`, store.ContainsPattern(f.Brand))
	}
	return q.Order("id").Limit(f.Page.Limit()).Offset(f.Page.Offset())
}

func (r *vehicleRepo) GetByID(ctx context.Context, id int64) (*repository.Vehicle, error) {
	var row vehicleModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gorm: get vehicle: %w", err)
	}
	v := row.toEntity()
	return &v, nil
}

func (r *vehicleRepo) List(ctx context.Context, f repository.VehicleFilter) ([]repository.Vehicle, error) {
	var rows []vehicleModel
	if err := vehicleQuery(r.db.WithContext(ctx), f).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gorm: list vehicles: %w", err)
	}
	out := make([]repository.Vehicle, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *vehicleRepo) Create(ctx context.Context, in repository.VehicleInput) (*repository.Vehicle, error) {
	row := vehicleModel{Name: in.Name, Brand: in.Brand, Year: in.Year}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("gorm: insert vehicle: %w", err)
	}
	v := row.toEntity()
	return &v, nil
}

func (r *vehicleRepo) Update(ctx context.Context, id int64, in repository.VehicleInput) (*repository.Vehicle, error) {
	res := r.db.WithContext(ctx).
		Model(&vehicleModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"nome": in.Name, "marca": in.Brand, "ano": in.Year})
	if res.Error != nil {
		return nil, fmt.Errorf("gorm: update vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return &repository.Vehicle{ID: id, Name: in.Name, Brand: in.Brand, Year: in.Year}, nil
}

func (r *vehicleRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&vehicleModel{})
	if res.Error != nil {
		return fmt.Errorf("gorm: delete vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
