package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/minimalapi/internal/http/server"
	"github.com/dropDatabas3/minimalapi/internal/store"
)

func migrateCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes del store configurado",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			off := false
			cfg.Storage.MigrateOnStart = &off

			conn, err := server.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			res, err := store.Migrate(cmd.Context(), conn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "driver=%s applied=%v skipped=%v took=%s\n",
				conn.Name(), res.Applied, res.Skipped, res.Duration)
			return nil
		},
	}
}
