package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range []string{"", "plain", "PLAIN", "bcrypt", "argon2id"} {
		s, err := New(name)
		require.NoError(t, err, name)
		require.NotNil(t, s)
	}
	_, err := New("md5")
	require.Error(t, err)
}

func TestPlainIsIdentity(t *testing.T) {
	s := Plain{}
	h, err := s.Hash("123456")
	require.NoError(t, err)
	require.Equal(t, "123456", h)
	require.True(t, s.Verify("123456", h))
	require.False(t, s.Verify("1234567", h))
	require.False(t, s.Verify("", h))
}

func TestBcrypt(t *testing.T) {
	s := Bcrypt{Cost: 4}
	h, err := s.Hash("123456")
	require.NoError(t, err)
	require.NotEqual(t, "123456", h)
	require.True(t, s.Verify("123456", h))
	require.False(t, s.Verify("nope", h))
}

func TestArgon2id(t *testing.T) {
	s := Argon2id{Params: Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}}
	h, err := s.Hash("123456")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(h, "$argon2id$v=19$m=8192,t=1,p=1$"))
	require.True(t, s.Verify("123456", h))
	require.False(t, s.Verify("nope", h))
	require.False(t, s.Verify("123456", "garbage"))
	require.False(t, s.Verify("123456", "$argon2id$v=19$m=x,t=1,p=1$a$b"))

	_, err = s.Hash("")
	require.Error(t, err)
}
