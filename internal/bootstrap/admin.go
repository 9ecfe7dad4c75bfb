// Package bootstrap crea el primer administrador cuando el store está vacío.
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	"github.com/dropDatabas3/minimalapi/internal/http/services/account"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
)

// PromptFunc pide email y senha al operador.
type PromptFunc func() (email, password string, err error)

// AdminBootstrapConfig configura el bootstrap del primer administrador.
type AdminBootstrapConfig struct {
	Admins   repository.AdministratorRepository
	Accounts account.AccountService

	// Credenciales pre-cargadas (bootstrap.admin_email / admin_password).
	AdminEmail    string
	AdminPassword string

	// Prompt se usa si faltan credenciales. nil = no interactivo.
	Prompt PromptFunc
}

// CheckAndCreateAdmin crea un Admin si no existe ningún administrador.
// Retorna el creado, o nil si ya había administradores o no hay credenciales.
func CheckAndCreateAdmin(ctx context.Context, cfg AdminBootstrapConfig) (*repository.Administrator, error) {
	log := logger.From(ctx).With(logger.Component("bootstrap"), logger.Op("CheckAndCreateAdmin"))

	n, err := cfg.Admins.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: count administrators: %w", err)
	}
	if n > 0 {
		log.Debug("administrators present, skipping bootstrap", logger.Count(n))
		return nil, nil
	}

	email, pass := cfg.AdminEmail, cfg.AdminPassword
	if email == "" || pass == "" {
		if cfg.Prompt == nil {
			log.Warn("no administrators and no bootstrap credentials configured")
			return nil, nil
		}
		email, pass, err = cfg.Prompt()
		if err != nil {
			return nil, fmt.Errorf("bootstrap: prompt: %w", err)
		}
	}

	admin, err := cfg.Accounts.Create(ctx, account.CreateInput{
		Email:    email,
		Password: pass,
		Role:     types.RoleAdmin.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: create admin: %w", err)
	}

	log.Info("bootstrap administrator created", logger.AdminID(admin.ID), logger.Email(admin.Email))
	return admin, nil
}

// TerminalPrompt lee email de in y la senha sin eco si in es una terminal.
// Si no lo es (pipe, tests) la senha se lee como una línea más.
func TerminalPrompt(in io.Reader, out io.Writer) PromptFunc {
	return func() (string, string, error) {
		reader := bufio.NewReader(in)

		fmt.Fprint(out, "Admin Email: ")
		email, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", "", err
		}
		email = strings.TrimSpace(email)
		if email == "" {
			return "", "", errors.New("email cannot be empty")
		}

		fmt.Fprint(out, "Admin Password: ")
		password, err := readSecret(in, reader, out)
		if err != nil {
			return "", "", err
		}
		if password == "" {
			return "", "", errors.New("password cannot be empty")
		}

		fmt.Fprint(out, "Confirm Password: ")
		confirm, err := readSecret(in, reader, out)
		if err != nil {
			return "", "", err
		}
		if password != confirm {
			return "", "", errors.New("passwords do not match")
		}
		return email, password, nil
	}
}

func readSecret(in io.Reader, reader *bufio.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		return string(b), err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
