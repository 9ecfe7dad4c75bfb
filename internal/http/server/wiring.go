// Package server arma la aplicación: store, servicios, controllers y router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/minimalapi/internal/bootstrap"
	"github.com/dropDatabas3/minimalapi/internal/config"
	"github.com/dropDatabas3/minimalapi/internal/http/controllers"
	"github.com/dropDatabas3/minimalapi/internal/http/router"
	"github.com/dropDatabas3/minimalapi/internal/http/services"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/metrics"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
	"github.com/dropDatabas3/minimalapi/internal/rate"
	"github.com/dropDatabas3/minimalapi/internal/security/password"
	"github.com/dropDatabas3/minimalapi/internal/store"
	_ "github.com/dropDatabas3/minimalapi/internal/store/adapters/dal"
)

// App agrupa las dependencias construidas por Build.
type App struct {
	Config   *config.Config
	Store    store.AdapterConnection
	Issuer   *jwtx.Issuer
	Services services.Services
	Metrics  *metrics.Metrics
	Handler  http.Handler

	closers []func() error
}

// Close libera los recursos en orden inverso al de apertura.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// OpenStore abre el store configurado y aplica migraciones si corresponde.
func OpenStore(ctx context.Context, cfg *config.Config) (store.AdapterConnection, error) {
	log := logger.From(ctx).With(logger.Component("server"), logger.Op("OpenStore"))

	conn, err := store.OpenAdapter(ctx, store.AdapterConfig{
		Name:            cfg.Storage.Driver,
		DSN:             cfg.Storage.DSN,
		MaxOpenConns:    cfg.Storage.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if cfg.MigrateOnStart() {
		res, err := store.Migrate(ctx, conn)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations checked",
			logger.String("driver", conn.Name()),
			logger.Int("applied", len(res.Applied)),
			logger.Int("skipped", len(res.Skipped)),
		)
	}
	return conn, nil
}

// NewIssuer crea el emisor de tokens. Secreto vacío deja la emisión deshabilitada.
func NewIssuer(cfg *config.Config) *jwtx.Issuer {
	iss := jwtx.NewIssuer(cfg.JWT.Secret)
	iss.TTL = cfg.JWT.TTL
	return iss
}

// NewServices arma los servicios de dominio sobre conn.
func NewServices(cfg *config.Config, conn store.AdapterConnection, tokens jwtx.TokenService) (services.Services, error) {
	scheme, err := password.New(cfg.Auth.PasswordScheme)
	if err != nil {
		return services.Services{}, err
	}
	return services.New(services.Deps{
		Store:     conn,
		Tokens:    tokens,
		Passwords: scheme,
	}), nil
}

// Build construye la aplicación completa a partir de cfg.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.From(ctx).With(logger.Component("server"), logger.Op("Build"))
	app := &App{Config: cfg}

	conn, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = conn
	app.closers = append(app.closers, conn.Close)

	app.Issuer = NewIssuer(cfg)
	if !app.Issuer.Enabled() {
		log.Warn("jwt secret not configured, login will return empty tokens and protected routes will reject every request")
	}

	app.Services, err = NewServices(cfg, conn, app.Issuer)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Metrics, err = metrics.New(nil)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := app.Metrics.RegisterStore(conn.Name(), conn); err != nil {
		log.Warn("store pool metrics not registered", logger.Err(err))
	}

	if _, err := bootstrap.CheckAndCreateAdmin(ctx, bootstrap.AdminBootstrapConfig{
		Admins:        conn.Administrators(),
		Accounts:      app.Services.Account,
		AdminEmail:    cfg.Bootstrap.AdminEmail,
		AdminPassword: cfg.Bootstrap.AdminPassword,
	}); err != nil {
		_ = app.Close()
		return nil, err
	}

	limiter, err := app.loginLimiter(ctx)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	ctrls := controllers.New(app.Services, controllers.Deps{
		Store:   conn,
		Version: cfg.App.Version,
		Metrics: app.Metrics,
	})
	app.Handler = router.New(router.Deps{
		Controllers:  ctrls,
		Tokens:       app.Issuer,
		Metrics:      app.Metrics,
		LoginLimiter: limiter,
	})

	log.Info("application built",
		logger.String("driver", conn.Name()),
		logger.String("password_scheme", cfg.Auth.PasswordScheme),
		logger.Bool("rate_limit", limiter != nil),
	)
	return app, nil
}

// loginLimiter retorna nil si el rate limit está deshabilitado.
func (a *App) loginLimiter(ctx context.Context) (rate.Limiter, error) {
	rc := a.Config.Rate
	if !rc.Enabled {
		return nil, nil
	}
	switch rc.Backend {
	case "redis":
		client := rdb.NewClient(&rdb.Options{
			Addr:     rc.Redis.Addr,
			Password: rc.Redis.Password,
			DB:       rc.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", rc.Redis.Addr, err)
		}
		a.closers = append(a.closers, client.Close)
		return rate.NewRedisLimiter(client, rc.Redis.Prefix, rc.Login.Limit, rc.Login.Window), nil
	default:
		return rate.NewMemoryLimiter(rc.Login.Limit, rc.Login.Window), nil
	}
}

// NewHTTPServer crea el *http.Server con los timeouts de cfg.
func NewHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
}
