package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/minimalapi/internal/domain/types"
	"github.com/dropDatabas3/minimalapi/internal/http/services/account"
	jwtx "github.com/dropDatabas3/minimalapi/internal/jwt"
	"github.com/dropDatabas3/minimalapi/internal/store/adapters/memory"
)

func newConfig() AdminBootstrapConfig {
	conn := memory.New()
	return AdminBootstrapConfig{
		Admins:   conn.Administrators(),
		Accounts: account.NewAccountService(conn.Administrators(), jwtx.NewIssuer(""), nil),
	}
}

func TestCreatesAdminOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	cfg := newConfig()
	cfg.AdminEmail, cfg.AdminPassword = "root@teste.com", "segredo"

	admin, err := CheckAndCreateAdmin(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, admin)
	require.Equal(t, types.RoleAdmin, admin.Role)

	// segunda vez no hace nada
	admin, err = CheckAndCreateAdmin(ctx, cfg)
	require.NoError(t, err)
	require.Nil(t, admin)

	n, err := cfg.Admins.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSkipsWithoutCredentials(t *testing.T) {
	admin, err := CheckAndCreateAdmin(context.Background(), newConfig())
	require.NoError(t, err)
	require.Nil(t, admin)
}

func TestUsesPrompt(t *testing.T) {
	cfg := newConfig()
	cfg.Prompt = func() (string, string, error) { return "p@teste.com", "pw", nil }

	admin, err := CheckAndCreateAdmin(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "p@teste.com", admin.Email)

	cfg = newConfig()
	cfg.Prompt = func() (string, string, error) { return "", "", errors.New("aborted") }
	_, err = CheckAndCreateAdmin(context.Background(), cfg)
	require.ErrorContains(t, err, "aborted")
}

func TestTerminalPromptFromPipe(t *testing.T) {
	var out bytes.Buffer
	prompt := TerminalPrompt(strings.NewReader("a@b.com\nsecret\nsecret\n"), &out)

	email, pass, err := prompt()
	require.NoError(t, err)
	require.Equal(t, "a@b.com", email)
	require.Equal(t, "secret", pass)
	require.Contains(t, out.String(), "Admin Email:")

	prompt = TerminalPrompt(strings.NewReader("a@b.com\nsecret\nother\n"), &out)
	_, _, err = prompt()
	require.ErrorContains(t, err, "do not match")
}
