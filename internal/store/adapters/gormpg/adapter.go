// Package gormpg implementa el adapter PostgreSQL sobre GORM.
// Los filtros de listado se componen sobre el query builder y se ejecutan en el servidor.
package gormpg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

func init() {
	store.RegisterAdapter(&gormAdapter{})
}

type gormAdapter struct{}

func (a *gormAdapter) Name() string { return "gorm" }

func (a *gormAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	if cfg.DSN == "" {
		return nil, errors.New("gorm: postgres dsn is required")
	}

	db, err := Open(cfg.DSN, false)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm: resolve sql db handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("gorm: ping postgres: %w", err)
	}
	return &Connection{db: db}, nil
}

// Open abre un *gorm.DB sobre Postgres. Con dryRun no se conecta ni ejecuta SQL.
func Open(dsn string, dryRun bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError:       true,
		DryRun:               dryRun,
		DisableAutomaticPing: dryRun,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm: open postgres: %w", err)
	}
	return db, nil
}

// Connection envuelve un *gorm.DB.
type Connection struct {
	db *gorm.DB
}

func (c *Connection) Name() string { return "gorm" }

func (c *Connection) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *Connection) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLDB expone el pool subyacente para el collector de métricas.
func (c *Connection) SQLDB() (*sql.DB, error) { return c.db.DB() }

func (c *Connection) Administrators() repository.AdministratorRepository {
	return &adminRepo{db: c.db}
}

func (c *Connection) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{db: c.db}
}

// Migrate usa AutoMigrate sobre los modelos. No registra versiones.
func (c *Connection) Migrate(ctx context.Context) (*store.MigrationResult, error) {
	if err := c.db.WithContext(ctx).AutoMigrate(&adminModel{}, &vehicleModel{}); err != nil {
		return nil, fmt.Errorf("gorm: automigrate: %w", err)
	}
	return &store.MigrationResult{}, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var (
	_ store.AdapterConnection = (*Connection)(nil)
	_ store.Migratable        = (*Connection)(nil)
)
