package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/minimalapi/internal/bootstrap"
	"github.com/dropDatabas3/minimalapi/internal/http/server"
	"github.com/dropDatabas3/minimalapi/internal/http/services/account"
)

func adminCmd(load loadFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Gestión de administradores",
	}

	var email, pass, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un administrador (pide email y senha si faltan)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			conn, err := server.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			svcs, err := server.NewServices(cfg, conn, server.NewIssuer(cfg))
			if err != nil {
				return err
			}

			if email == "" || pass == "" {
				email, pass, err = bootstrap.TerminalPrompt(os.Stdin, cmd.ErrOrStderr())()
				if err != nil {
					return err
				}
			}

			admin, err := svcs.Account.Create(cmd.Context(), account.CreateInput{
				Email:    email,
				Password: pass,
				Role:     role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "id=%d email=%s perfil=%s\n", admin.ID, admin.Email, admin.Role)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "Email del administrador")
	create.Flags().StringVar(&pass, "password", "", "Senha (si falta se pide por terminal)")
	create.Flags().StringVar(&role, "role", "Adm", "Perfil: Adm|Editor")

	cmd.AddCommand(create)
	return cmd
}
