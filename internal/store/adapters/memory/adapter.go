// Package memory implementa un adapter en memoria, sin persistencia.
// Útil para desarrollo local y tests de servicios.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(_ context.Context, _ store.AdapterConfig) (store.AdapterConnection, error) {
	return New(), nil
}

// Connection guarda administradores y vehículos detrás de un único RWMutex.
type Connection struct {
	mu sync.RWMutex

	adminSeq int64
	admins   map[int64]repository.Administrator

	vehicleSeq int64
	vehicles   map[int64]repository.Vehicle
}

// New crea una conexión vacía.
func New() *Connection {
	return &Connection{
		admins:   make(map[int64]repository.Administrator),
		vehicles: make(map[int64]repository.Vehicle),
	}
}

func (c *Connection) Name() string               { return "memory" }
func (c *Connection) Ping(context.Context) error { return nil }
func (c *Connection) Close() error               { return nil }

func (c *Connection) Administrators() repository.AdministratorRepository {
	return &adminRepo{c: c}
}

func (c *Connection) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{c: c}
}

// sortedIDs devuelve las claves en orden ascendente (orden nativo del store).
func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ─── AdministratorRepository ───

type adminRepo struct{ c *Connection }

func (r *adminRepo) GetByID(_ context.Context, id int64) (*repository.Administrator, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	a, ok := r.c.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *adminRepo) GetByEmail(_ context.Context, email string) (*repository.Administrator, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, id := range sortedIDs(r.c.admins) {
		if a := r.c.admins[id]; a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *adminRepo) List(_ context.Context, page repository.Page) ([]repository.Administrator, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	all := make([]repository.Administrator, 0, len(r.c.admins))
	for _, id := range sortedIDs(r.c.admins) {
		all = append(all, r.c.admins[id])
	}
	return repository.Slice(all, page), nil
}

func (r *adminRepo) Count(context.Context) (int, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	return len(r.c.admins), nil
}

func (r *adminRepo) Create(_ context.Context, in repository.CreateAdministratorInput) (*repository.Administrator, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	for _, a := range r.c.admins {
		if a.Email == in.Email {
			return nil, repository.ErrConflict
		}
	}
	r.c.adminSeq++
	a := repository.Administrator{
		ID:       r.c.adminSeq,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	}
	r.c.admins[a.ID] = a
	return &a, nil
}

// ─── VehicleRepository ───

type vehicleRepo struct{ c *Connection }

func (r *vehicleRepo) GetByID(_ context.Context, id int64) (*repository.Vehicle, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	v, ok := r.c.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r *vehicleRepo) List(_ context.Context, f repository.VehicleFilter) ([]repository.Vehicle, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	matched := make([]repository.Vehicle, 0)
	for _, id := range sortedIDs(r.c.vehicles) {
		v := r.c.vehicles[id]
		if f.Name != "" && !containsFold(v.Name, f.Name) {
			continue
		}
		if f.Brand != "" && !containsFold(v.Brand, f.Brand) {
			continue
		}
		matched = append(matched, v)
	}
	return repository.Slice(matched, f.Page), nil
}

func (r *vehicleRepo) Create(_ context.Context, in repository.VehicleInput) (*repository.Vehicle, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	r.c.vehicleSeq++
	v := repository.Vehicle{ID: r.c.vehicleSeq, Name: in.Name, Brand: in.Brand, Year: in.Year}
	r.c.vehicles[v.ID] = v
	return &v, nil
}

func (r *vehicleRepo) Update(_ context.Context, id int64, in repository.VehicleInput) (*repository.Vehicle, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.vehicles[id]; !ok {
		return nil, repository.ErrNotFound
	}
	v := repository.Vehicle{ID: id, Name: in.Name, Brand: in.Brand, Year: in.Year}
	r.c.vehicles[id] = v
	return &v, nil
}

func (r *vehicleRepo) Delete(_ context.Context, id int64) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.c.vehicles, id)
	return nil
}

var _ store.AdapterConnection = (*Connection)(nil)
