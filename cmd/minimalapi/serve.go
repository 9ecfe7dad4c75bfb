package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/minimalapi/internal/http/server"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
)

func serveCmd(load loadFunc) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("migrate") {
				cfg.Storage.MigrateOnStart = &migrate
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.Named("serve")
			ctx = logger.ToContext(ctx, log)

			app, err := server.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					log.Warn("cleanup failed", logger.Err(err))
				}
			}()

			srv := server.NewHTTPServer(cfg, app.Handler)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info("listening", logger.String("addr", srv.Addr), logger.String("env", cfg.App.Env))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				log.Info("shutting down", logger.Any("timeout", cfg.Server.ShutdownTimeout))
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Aplica migraciones al iniciar (pisa storage.migrate_on_start)")
	return cmd
}
