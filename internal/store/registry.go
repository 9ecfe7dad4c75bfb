// Package store provee el registry de adaptadores de almacenamiento.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
)

// Adapter representa un adaptador de almacenamiento capaz de crear repositorios.
type Adapter interface {
	// Name retorna el nombre del adapter (ej: "memory", "sqlite", "postgres", "gorm").
	Name() string

	// Connect establece conexión con el almacenamiento.
	Connect(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error)
}

// AdapterConnection representa una conexión activa.
type AdapterConnection interface {
	Name() string

	// Ping verifica la conexión. Usado por /readyz.
	Ping(ctx context.Context) error

	Close() error

	Administrators() repository.AdministratorRepository
	Vehicles() repository.VehicleRepository
}

// Migratable es implementada por las conexiones que manejan esquema.
type Migratable interface {
	Migrate(ctx context.Context) (*MigrationResult, error)
}

// AdapterConfig configuración para conectar a un almacenamiento.
type AdapterConfig struct {
	// Name del adapter: "memory", "sqlite", "postgres", "gorm"
	Name string

	// DSN connection string. Para sqlite es el path del archivo.
	DSN string

	// Pool settings (para DBs)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// RegisterAdapter registra un adapter en el registry global.
// Llamar en init() de cada adapter.
func RegisterAdapter(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := a.Name()
	if _, exists := adapters[name]; exists {
		panic(fmt.Sprintf("adapter: %q already registered", name))
	}
	adapters[name] = a
}

// GetAdapter obtiene un adapter por nombre.
func GetAdapter(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[name]
	return a, ok
}

// ListAdapters retorna los nombres registrados, ordenados.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenAdapter abre una conexión usando el adapter especificado en la config.
func OpenAdapter(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error) {
	a, ok := GetAdapter(cfg.Name)
	if !ok {
		return nil, fmt.Errorf("adapter: %q not registered (available: %v)", cfg.Name, ListAdapters())
	}
	return a.Connect(ctx, cfg)
}

// Migrate aplica el esquema si la conexión lo soporta. No-op para memory.
func Migrate(ctx context.Context, conn AdapterConnection) (*MigrationResult, error) {
	m, ok := conn.(Migratable)
	if !ok {
		return &MigrationResult{}, nil
	}
	return m.Migrate(ctx)
}
