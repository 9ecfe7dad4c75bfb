package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// ─── AdministratorRepository ───

type adminRepo struct{ db *sql.DB }

const adminColumns = `id, email, senha, perfil`

func scanAdmin(row rowScanner) (*repository.Administrator, error) {
	var a repository.Administrator
	var role string
	if err := row.Scan(&a.ID, &a.Email, &a.Password, &role); err != nil {
		return nil, err
	}
	a.Role = types.Role(role)
	return &a, nil
}

func (r *adminRepo) getOne(ctx context.Context, where string, arg any) (*repository.Administrator, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM administradores WHERE `+where, arg)
	a, err := scanAdmin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get administrator: %w", err)
	}
	return a, nil
}

func (r *adminRepo) GetByID(ctx context.Context, id int64) (*repository.Administrator, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*repository.Administrator, error) {
	return r.getOne(ctx, `email = ?`, email)
}

func (r *adminRepo) List(ctx context.Context, page repository.Page) ([]repository.Administrator, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+adminColumns+` FROM administradores ORDER BY id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list administrators: %w", err)
	}
	defer rows.Close()

	out := make([]repository.Administrator, 0, repository.PageSize)
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan administrator: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *adminRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM administradores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count administrators: %w", err)
	}
	return n, nil
}

func (r *adminRepo) Create(ctx context.Context, in repository.CreateAdministratorInput) (*repository.Administrator, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO administradores (email, senha, perfil) VALUES (?, ?, ?)`,
		in.Email, in.Password, string(in.Role),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("sqlite: insert administrator: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: last insert id: %w", err)
	}
	return &repository.Administrator{ID: id, Email: in.Email, Password: in.Password, Role: in.Role}, nil
}

// ─── VehicleRepository ───

type vehicleRepo struct{ db *sql.DB }

const vehicleColumns = `id, nome, marca, ano`

func scanVehicle(row rowScanner) (*repository.Vehicle, error) {
	var v repository.Vehicle
	if err := row.Scan(&v.ID, &v.Name, &v.Brand, &v.Year); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id int64) (*repository.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM veiculos WHERE id = ?`, id)
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get vehicle: %w", err)
	}
	return v, nil
}

func (r *vehicleRepo) List(ctx context.Context, f repository.VehicleFilter) ([]repository.Vehicle, error) {
	var (
		where []string
		args  []any
	)
	if f.Name != "" {
		where = append(where, `fold_lower(nome) LIKE ? ESCAPE '\'`)
		args = append(args, store.ContainsPattern(f.Name))
	}
	if f.Brand != "" {
		where = append(where, `fold_lower(marca) LIKE ? ESCAPE '\'`)
		args = append(args, store.ContainsPattern(f.Brand))
	}

	q := `SELECT ` + vehicleColumns + ` FROM veiculos`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, f.Page.Limit(), f.Page.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list vehicles: %w", err)
	}
	defer rows.Close()

	out := make([]repository.Vehicle, 0, repository.PageSize)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan vehicle: %w", err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *vehicleRepo) Create(ctx context.Context, in repository.VehicleInput) (*repository.Vehicle, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO veiculos (nome, marca, ano) VALUES (?, ?, ?)`,
		in.Name, in.Brand, in.Year,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: insert vehicle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: last insert id: %w", err)
	}
	return &repository.Vehicle{ID: id, Name: in.Name, Brand: in.Brand, Year: in.Year}, nil
}

func (r *vehicleRepo) Update(ctx context.Context, id int64, in repository.VehicleInput) (*repository.Vehicle, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE veiculos SET nome = ?, marca = ?, ano = ? WHERE id = ?`,
		in.Name, in.Brand, in.Year, id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update vehicle: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, repository.ErrNotFound
	}
	return &repository.Vehicle{ID: id, Name: in.Name, Brand: in.Brand, Year: in.Year}, nil
}

func (r *vehicleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM veiculos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete vehicle: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
