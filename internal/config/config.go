// Package config carga la configuración del servicio: YAML opcional,
// luego variables de entorno (que pisan el YAML), luego defaults y validación.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/minimalapi/internal/security/password"
)

type Config struct {
	App struct {
		// dev | prod
		Env     string `yaml:"env" env:"APP_ENV"`
		Name    string `yaml:"name" env:"APP_NAME"`
		Version string `yaml:"version" env:"APP_VERSION"`
	} `yaml:"app"`

	Server struct {
		Addr            string        `yaml:"addr" env:"SERVER_ADDR"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL"`
	} `yaml:"log"`

	Storage struct {
		// memory | sqlite | postgres | gorm
		Driver          string        `yaml:"driver" env:"STORAGE_DRIVER"`
		DSN             string        `yaml:"dsn" env:"STORAGE_DSN"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"STORAGE_MAX_OPEN_CONNS"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"STORAGE_MAX_IDLE_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"STORAGE_CONN_MAX_LIFETIME"`
		MigrateOnStart  *bool         `yaml:"migrate_on_start" env:"STORAGE_MIGRATE_ON_START"`
	} `yaml:"storage"`

	JWT struct {
		// Secreto HS256. Vacío deshabilita la emisión de tokens (login devuelve token "").
		Secret string        `yaml:"secret" env:"JWT_SECRET"`
		TTL    time.Duration `yaml:"ttl" env:"JWT_TTL"`
	} `yaml:"jwt"`

	Auth struct {
		// plain | bcrypt | argon2id
		PasswordScheme string `yaml:"password_scheme" env:"AUTH_PASSWORD_SCHEME"`
	} `yaml:"auth"`

	Rate struct {
		Enabled bool `yaml:"enabled" env:"RATE_ENABLED"`
		// memory | redis
		Backend string `yaml:"backend" env:"RATE_BACKEND"`
		Login   struct {
			Limit  int           `yaml:"limit" env:"RATE_LOGIN_LIMIT"`
			Window time.Duration `yaml:"window" env:"RATE_LOGIN_WINDOW"`
		} `yaml:"login"`
		Redis struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"REDIS_DB"`
			Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
		} `yaml:"redis"`
	} `yaml:"rate"`

	Bootstrap struct {
		AdminEmail    string `yaml:"admin_email" env:"BOOTSTRAP_ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"BOOTSTRAP_ADMIN_PASSWORD"`
	} `yaml:"bootstrap"`
}

// Load lee path (si existe), aplica variables de entorno y defaults, y valida.
// path vacío o inexistente no es error.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := ParseEnv(&c); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseEnv pisa target con las variables de entorno declaradas en los tags `env`.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.App.Env = strings.ToLower(strings.TrimSpace(c.App.Env))
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.Name == "" {
		c.App.Name = "minimalapi"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Driver == "sqlite" && c.Storage.DSN == "" {
		c.Storage.DSN = "data/minimalapi.db"
	}
	if c.Storage.MigrateOnStart == nil {
		on := true
		c.Storage.MigrateOnStart = &on
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 24 * time.Hour
	}
	if c.Auth.PasswordScheme == "" {
		c.Auth.PasswordScheme = password.SchemePlain
	}
	if c.Rate.Backend == "" {
		c.Rate.Backend = "memory"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == 0 {
		c.Rate.Login.Window = time.Minute
	}
	if c.Rate.Redis.Prefix == "" {
		c.Rate.Redis.Prefix = "rl:"
	}
}

// Validate rechaza combinaciones que impedirían arrancar el servicio.
// Un JWT secret vacío no es error.
func (c *Config) Validate() error {
	var errs []error

	switch c.App.Env {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("app.env: unknown value %q", c.App.Env))
	}

	switch c.Storage.Driver {
	case "memory", "sqlite":
	case "postgres", "gorm":
		if c.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("storage.dsn: required for driver %q", c.Storage.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver: unknown value %q", c.Storage.Driver))
	}

	if _, err := password.New(c.Auth.PasswordScheme); err != nil {
		errs = append(errs, fmt.Errorf("auth.password_scheme: %w", err))
	}
	if c.JWT.TTL < 0 {
		errs = append(errs, errors.New("jwt.ttl: must be positive"))
	}

	if c.Rate.Enabled {
		switch c.Rate.Backend {
		case "memory":
		case "redis":
			if c.Rate.Redis.Addr == "" {
				errs = append(errs, errors.New("rate.redis.addr: required for redis backend"))
			}
		default:
			errs = append(errs, fmt.Errorf("rate.backend: unknown value %q", c.Rate.Backend))
		}
		if c.Rate.Login.Limit < 1 {
			errs = append(errs, errors.New("rate.login.limit: must be >= 1"))
		}
	}

	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		errs = append(errs, errors.New("bootstrap: admin_email and admin_password must be set together"))
	}

	return errors.Join(errs...)
}

// MigrateOnStart devuelve el flag ya resuelto.
func (c *Config) MigrateOnStart() bool {
	return c.Storage.MigrateOnStart == nil || *c.Storage.MigrateOnStart
}
