// Package sqlite implementa el adapter SQLite (modernc.org/sqlite, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/store"
	migrations "github.com/dropDatabas3/minimalapi/migrations/sqlite"
)

func init() {
	if err := msqlite.RegisterDeterministicScalarFunction(foldLowerFunc, 1, foldLower); err != nil {
		panic(fmt.Sprintf("sqlite: register %s: %v", foldLowerFunc, err))
	}
	store.RegisterAdapter(&sqliteAdapter{})
}

// foldLowerFunc reemplaza a lower() en los filtros: el lower() de SQLite solo pliega ASCII.
const foldLowerFunc = "fold_lower"

// foldLower pliega con strings.ToLower, igual que store.ContainsPattern.
func foldLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

const defaultPragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

type sqliteAdapter struct{}

func (a *sqliteAdapter) Name() string { return "sqlite" }

func (a *sqliteAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	path := strings.TrimSpace(cfg.DSN)
	if path == "" {
		return nil, fmt.Errorf("sqlite: storage path is required")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?" + defaultPragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return &Connection{db: db}, nil
}

// Connection envuelve un *sql.DB abierto con el driver "sqlite".
type Connection struct {
	db *sql.DB
}

func (c *Connection) Name() string { return "sqlite" }

func (c *Connection) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c *Connection) Close() error { return c.db.Close() }

// SQLDB expone el pool para el collector de métricas.
func (c *Connection) SQLDB() (*sql.DB, error) { return c.db, nil }

func (c *Connection) Administrators() repository.AdministratorRepository {
	return &adminRepo{db: c.db}
}

func (c *Connection) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{db: c.db}
}

// Migrate implementa store.Migratable.
func (c *Connection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	return store.NewMigrator(migrations.FS, migrations.Dir).Run(ctx, sqlExecutor{db: c.db})
}

type sqlExecutor struct{ db *sql.DB }

func (e sqlExecutor) Exec(ctx context.Context, query string) error {
	_, err := e.db.ExecContext(ctx, query)
	return err
}

func (e sqlExecutor) Versions(ctx context.Context, query string) ([]int, error) {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ensureDir crea el directorio del archivo. Ignora DSNs "file:" y ":memory:".
func ensureDir(path string) error {
	if strings.HasPrefix(path, "file:") || strings.HasPrefix(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sqlite: create dir %s: %w", dir, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var (
	_ store.AdapterConnection = (*Connection)(nil)
	_ store.Migratable        = (*Connection)(nil)
)
