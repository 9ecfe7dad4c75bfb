package pg

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/minimalapi/internal/store"
	"github.com/dropDatabas3/minimalapi/internal/store/storetest"
)

// Requiere una base descartable: TEST_PG_DSN=postgres://... go test ./internal/store/adapters/pg
func TestPostgresConformance(t *testing.T) {
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) store.AdapterConnection {
		ctx := context.Background()
		conn, err := store.OpenAdapter(ctx, store.AdapterConfig{Name: "postgres", DSN: dsn})
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })

		_, err = store.Migrate(ctx, conn)
		require.NoError(t, err)

		pc := conn.(*pgConnection)
		_, err = pc.pool.Exec(ctx, `TRUNCATE administradores, veiculos RESTART IDENTITY`)
		require.NoError(t, err)
		return conn
	})
}
