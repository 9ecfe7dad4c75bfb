package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/minimalapi/internal/config"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
)

var version = "dev"

func main() {
	var cfgPath string

	root := &cobra.Command{
		Use:           "minimalapi",
		Short:         "API de administradores y vehículos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", envOr("CONFIG_PATH", "configs/config.yaml"), "Archivo YAML de configuración (env CONFIG_PATH)")

	load := func() (*config.Config, error) {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		if cfg.App.Version == "" {
			cfg.App.Version = version
		}
		logger.Init(logger.Config{
			Env:         cfg.App.Env,
			Level:       cfg.Log.Level,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
		})
		return cfg, nil
	}

	root.AddCommand(
		serveCmd(load),
		migrateCmd(load),
		adminCmd(load),
		tokenCmd(load),
	)

	err := root.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type loadFunc func() (*config.Config, error)

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
