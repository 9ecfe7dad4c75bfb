package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "dev", c.App.Env)
	require.Equal(t, ":8080", c.Server.Addr)
	require.Equal(t, "sqlite", c.Storage.Driver)
	require.Equal(t, "data/minimalapi.db", c.Storage.DSN)
	require.Equal(t, 24*time.Hour, c.JWT.TTL)
	require.Equal(t, "plain", c.Auth.PasswordScheme)
	require.Empty(t, c.JWT.Secret)
	require.True(t, c.MigrateOnStart())
}

func TestLoadYAML(t *testing.T) {
	p := writeYAML(t, `
app:
  env: prod
server:
  addr: ":9090"
storage:
  driver: postgres
  dsn: postgres://u:p@localhost/db
  migrate_on_start: false
jwt:
  secret: abc
  ttl: 2h
rate:
  enabled: true
  login:
    limit: 3
    window: 30s
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "prod", c.App.Env)
	require.Equal(t, ":9090", c.Server.Addr)
	require.Equal(t, "postgres", c.Storage.Driver)
	require.False(t, c.MigrateOnStart())
	require.Equal(t, "abc", c.JWT.Secret)
	require.Equal(t, 2*time.Hour, c.JWT.TTL)
	require.Equal(t, 3, c.Rate.Login.Limit)
	require.Equal(t, 30*time.Second, c.Rate.Login.Window)
}

func TestEnvOverridesYAML(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: from-yaml\nserver:\n  addr: \":9090\"\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("STORAGE_DRIVER", "memory")

	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "from-env", c.JWT.Secret)
	require.Equal(t, ":9090", c.Server.Addr)
	require.Equal(t, "memory", c.Storage.Driver)
}

func TestValidate(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "oracle")
	_, err := Load("")
	require.ErrorContains(t, err, "storage.driver")

	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err = Load("")
	require.ErrorContains(t, err, "storage.dsn")

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AUTH_PASSWORD_SCHEME", "md5")
	_, err = Load("")
	require.ErrorContains(t, err, "auth.password_scheme")

	t.Setenv("AUTH_PASSWORD_SCHEME", "bcrypt")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "adm@teste.com")
	_, err = Load("")
	require.ErrorContains(t, err, "bootstrap")
}

func TestInvalidYAML(t *testing.T) {
	p := writeYAML(t, "server: [")
	_, err := Load(p)
	require.Error(t, err)
}
