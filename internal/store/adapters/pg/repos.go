package pg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

// ─── AdministratorRepository ───

type adminRepo struct{ pool *pgxpool.Pool }

func scanAdmin(row pgx.Row) (*repository.Administrator, error) {
	var a repository.Administrator
	var role string
	if err := row.Scan(&a.ID, &a.Email, &a.Password, &role); err != nil {
		return nil, err
	}
	a.Role = types.Role(role)
	return &a, nil
}

func (r *adminRepo) GetByID(ctx context.Context, id int64) (*repository.Administrator, error) {
	const query = `SELECT id, email, senha, perfil FROM administradores WHERE id = $1`
	a, err := scanAdmin(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get administrator: %w", err)
	}
	return a, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*repository.Administrator, error) {
	const query = `SELECT id, email, senha, perfil FROM administradores WHERE email = $1`
	a, err := scanAdmin(r.pool.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get administrator by email: %w", err)
	}
	return a, nil
}

func (r *adminRepo) List(ctx context.Context, page repository.Page) ([]repository.Administrator, error) {
	const query = `
		SELECT id, email, senha, perfil FROM administradores
		ORDER BY id LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("pg: list administrators: %w", err)
	}
	defer rows.Close()

	out := make([]repository.Administrator, 0, repository.PageSize)
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan administrator: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *adminRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM administradores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("pg: count administrators: %w", err)
	}
	return n, nil
}

func (r *adminRepo) Create(ctx context.Context, in repository.CreateAdministratorInput) (*repository.Administrator, error) {
	const query = `
		INSERT INTO administradores (email, senha, perfil)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	a := repository.Administrator{Email: in.Email, Password: in.Password, Role: in.Role}
	if err := r.pool.QueryRow(ctx, query, in.Email, in.Password, string(in.Role)).Scan(&a.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("pg: insert administrator: %w", err)
	}
	return &a, nil
}

// ─── VehicleRepository ───

type vehicleRepo struct{ pool *pgxpool.Pool }

func scanVehicle(row pgx.Row) (*repository.Vehicle, error) {
	var v repository.Vehicle
	if err := row.Scan(&v.ID, &v.Name, &v.Brand, &v.Year); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id int64) (*repository.Vehicle, error) {
	const query = `SELECT id, nome, marca, ano FROM veiculos WHERE id = $1`
	v, err := scanVehicle(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get vehicle: %w", err)
	}
	return v, nil
}

func (r *vehicleRepo) List(ctx context.Context, f repository.VehicleFilter) ([]repository.Vehicle, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Name != "" {
		where = append(where, `nome ILIKE `+arg(store.ContainsPattern(f.Name))+` ESCAPE '\'`)
	}
	if f.Brand != "" {
		where = append(where, `marca ILIKE `+arg(store.ContainsPattern(f.Brand))+` ESCAPE '\'`)
	}

	query := `SELECT id, nome, marca, ano FROM veiculos`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY id LIMIT ` + arg(f.Page.Limit()) + ` OFFSET ` + arg(f.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list vehicles: %w", err)
	}
	defer rows.Close()

	out := make([]repository.Vehicle, 0, repository.PageSize)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan vehicle: %w", err)
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *vehicleRepo) Create(ctx context.Context, in repository.VehicleInput) (*repository.Vehicle, error) {
	const query = `INSERT INTO veiculos (nome, marca, ano) VALUES ($1, $2, $3) RETURNING id`
	v := repository.Vehicle{Name: in.Name, Brand: in.Brand, Year: in.Year}
	if err := r.pool.QueryRow(ctx, query, in.Name, in.Brand, in.Year).Scan(&v.ID); err != nil {
		return nil, fmt.Errorf("pg: insert vehicle: %w", err)
	}
	return &v, nil
}

func (r *vehicleRepo) Update(ctx context.Context, id int64, in repository.VehicleInput) (*repository.Vehicle, error) {
	const query = `UPDATE veiculos SET nome = $2, marca = $3, ano = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, in.Name, in.Brand, in.Year)
	if err != nil {
		return nil, fmt.Errorf("pg: update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return &repository.Vehicle{ID: id, Name: in.Name, Brand: in.Brand, Year: in.Year}, nil
}

func (r *vehicleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM veiculos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pg: delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
