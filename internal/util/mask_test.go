package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"adm@teste.com":     "a…@t….com",
		" Editor@Frota.BR ": "e…@f….br",
		"a@b.com":           "a@b.com",
		"":                  "",
		"abc":               "***",
		"operador":          "o…r",
	}
	for in, want := range cases {
		require.Equal(t, want, MaskEmail(in), in)
	}
}
