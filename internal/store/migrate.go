package store

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Formato de archivo: {version}_{name}.sql (ej: 0001_init.sql)
var migrationFilePattern = regexp.MustCompile(`^(\d+)_(.+)\.sql$`)

// MigrationExecutor abstrae pgx vs database/sql para el Migrator.
type MigrationExecutor interface {
	Exec(ctx context.Context, query string) error
	Versions(ctx context.Context, query string) ([]int, error)
}

// Migration representa una migración individual.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationResult resultado de aplicar migraciones.
type MigrationResult struct {
	Applied  []int
	Skipped  []int
	Duration time.Duration
}

// Migrator aplica migraciones SQL embebidas, una sola vez cada una.
type Migrator struct {
	fsys fs.FS
	dir  string
}

// NewMigrator crea un Migrator que lee dir dentro de fsys.
func NewMigrator(fsys fs.FS, dir string) *Migrator {
	return &Migrator{fsys: fsys, dir: dir}
}

// ParseMigrations lee y ordena por versión las migraciones disponibles.
func (m *Migrator) ParseMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(m.fsys, m.dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations dir: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		matches := migrationFilePattern.FindStringSubmatch(e.Name())
		if matches == nil {
			continue
		}
		version, _ := strconv.Atoi(matches[1])
		content, err := fs.ReadFile(m.fsys, path.Join(m.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: matches[2], SQL: string(content)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS _migrations (
	version INTEGER PRIMARY KEY,
	name    VARCHAR(255) NOT NULL
)`

// Run aplica las migraciones pendientes.
func (m *Migrator) Run(ctx context.Context, exec MigrationExecutor) (*MigrationResult, error) {
	start := time.Now()
	res := &MigrationResult{}

	if err := exec.Exec(ctx, createMigrationsTable); err != nil {
		return res, fmt.Errorf("creating migrations table: %w", err)
	}

	versions, err := exec.Versions(ctx, "SELECT version FROM _migrations")
	if err != nil {
		return res, fmt.Errorf("getting applied migrations: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	migrations, err := m.ParseMigrations()
	if err != nil {
		return res, err
	}

	for _, mig := range migrations {
		if applied[mig.Version] {
			res.Skipped = append(res.Skipped, mig.Version)
			continue
		}
		if err := exec.Exec(ctx, mig.SQL); err != nil {
			return res, fmt.Errorf("applying migration %d_%s: %w", mig.Version, mig.Name, err)
		}
		record := fmt.Sprintf("INSERT INTO _migrations (version, name) VALUES (%d, '%s')",
			mig.Version, strings.ReplaceAll(mig.Name, "'", "''"))
		if err := exec.Exec(ctx, record); err != nil {
			return res, fmt.Errorf("recording migration %d: %w", mig.Version, err)
		}
		res.Applied = append(res.Applied, mig.Version)
	}

	res.Duration = time.Since(start)
	return res, nil
}
