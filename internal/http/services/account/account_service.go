// Package account contiene el service de administradores: login y alta.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/minimalapi/internal/domain/repository"
	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/observability/logger"
	"github.com/dropDatabas3/minimalapi/internal/security/password"
	"github.com/dropDatabas3/minimalapi/internal/validation"
)

// ErrInvalidCredentials: email inexistente o senha incorrecta. No distingue entre ambos.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CreateInput son los datos crudos de alta. Role se interpreta con types.ParseRole.
type CreateInput struct {
	Email    string
	Password string
	Role     string
}

// LoginResult es el administrador autenticado y su token de sesión.
// Token vacío significa que la emisión de tokens está deshabilitada.
type LoginResult struct {
	Administrator repository.Administrator
	Token         string
}

// AccountService define las operaciones sobre administradores.
type AccountService interface {
	Authenticate(ctx context.Context, email, password string) (*repository.Administrator, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Create(ctx context.Context, in CreateInput) (*repository.Administrator, error)
	GetByID(ctx context.Context, id int64) (*repository.Administrator, error)
	List(ctx context.Context, page repository.Page) ([]repository.Administrator, error)
}

type accountService struct {
	repo      repository.AdministratorRepository
	tokens    jwtx.TokenService
	passwords password.Scheme
}

// NewAccountService crea el service. passwords nil equivale a plain.
func NewAccountService(repo repository.AdministratorRepository, tokens jwtx.TokenService, passwords password.Scheme) AccountService {
	if passwords == nil {
		passwords = password.Plain{}
	}
	return &accountService{repo: repo, tokens: tokens, passwords: passwords}
}

const componentAccount = "account"

func (s *accountService) Authenticate(ctx context.Context, email, plain string) (*repository.Administrator, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentAccount),
		logger.Op("Authenticate"),
	)

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Debug("unknown email", logger.MaskedEmail(email))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load administrator", logger.Err(err))
		return nil, err
	}
	if !s.passwords.Verify(plain, admin.Password) {
		log.Debug("password mismatch", logger.AdminID(admin.ID))
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

func (s *accountService) Login(ctx context.Context, email, plain string) (*LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentAccount),
		logger.Op("Login"),
	)

	admin, err := s.Authenticate(ctx, email, plain)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(*admin)
	if err != nil {
		log.Error("failed to issue token", logger.Err(err))
		return nil, fmt.Errorf("account: issue token: %w", err)
	}
	if token == "" {
		log.Warn("jwt secret not configured, login without token")
	}

	log.Info("administrator logged in", logger.AdminID(admin.ID), logger.Role(admin.Role.String()))
	return &LoginResult{Administrator: *admin, Token: token}, nil
}

func (s *accountService) Create(ctx context.Context, in CreateInput) (*repository.Administrator, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentAccount),
		logger.Op("Create"),
	)

	if err := validation.Administrator(in.Email, in.Password, in.Role); err != nil {
		log.Debug("invalid administrator", logger.Err(err))
		return nil, err
	}

	role, ok := types.ParseRole(in.Role)
	if !ok {
		role = types.RoleEditor
	}

	stored, err := s.passwords.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", logger.Err(err))
		return nil, fmt.Errorf("account: hash password: %w", err)
	}

	admin, err := s.repo.Create(ctx, repository.CreateAdministratorInput{
		Email:    in.Email,
		Password: stored,
		Role:     role,
	})
	if err != nil {
		if repository.IsConflict(err) {
			log.Info("email already registered", logger.MaskedEmail(in.Email))
			return nil, err
		}
		log.Error("failed to create administrator", logger.Err(err))
		return nil, err
	}

	log.Info("administrator created", logger.AdminID(admin.ID), logger.Role(role.String()))
	return admin, nil
}

func (s *accountService) GetByID(ctx context.Context, id int64) (*repository.Administrator, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil && !repository.IsNotFound(err) {
		logger.From(ctx).Error("failed to get administrator",
			logger.Layer("service"),
			logger.Component(componentAccount),
			logger.Op("GetByID"),
			logger.AdminID(id),
			logger.Err(err),
		)
	}
	return admin, err
}

func (s *accountService) List(ctx context.Context, page repository.Page) ([]repository.Administrator, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentAccount),
		logger.Op("List"),
	)

	page = page.Normalize()
	admins, err := s.repo.List(ctx, page)
	if err != nil {
		log.Error("failed to list administrators", logger.Err(err))
		return nil, err
	}

	log.Debug("administrators listed", logger.Page(int(page)), logger.Count(len(admins)))
	return admins, nil
}
