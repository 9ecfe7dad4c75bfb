package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/minimalapi/internal/http/server"
)

// tokenCmd emite un JWT para un administrador existente, sin pasar por login.
func tokenCmd(load loadFunc) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token para un administrador existente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email es requerido")
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			iss := server.NewIssuer(cfg)
			if !iss.Enabled() {
				return errors.New("jwt.secret no configurado")
			}

			conn, err := server.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			admin, err := conn.Administrators().GetByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("administrador %s: %w", email, err)
			}
			tk, err := iss.Issue(*admin)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tk)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email del administrador")
	return cmd
}
