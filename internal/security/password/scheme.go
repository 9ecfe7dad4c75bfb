// Package password implementa los esquemas de almacenamiento de contraseñas de administradores.
//
// El esquema por defecto es "plain": la contraseña se guarda y compara como
// cadena opaca, igual que los datos ya existentes. "bcrypt" y "argon2id" se
// activan por configuración (auth.password_scheme) y aplican tanto al crear
// como al autenticar.
package password

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Nombres de esquema aceptados en configuración.
const (
	SchemePlain    = "plain"
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

// Scheme transforma la contraseña antes de persistirla y la verifica en el login.
type Scheme interface {
	Name() string
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// New devuelve el esquema por nombre. Vacío equivale a plain.
func New(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemePlain:
		return Plain{}, nil
	case SchemeBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	case SchemeArgon2id:
		return Argon2id{Params: Default}, nil
	}
	return nil, fmt.Errorf("password: unknown scheme %q", name)
}

// Plain guarda la contraseña tal cual.
type Plain struct{}

func (Plain) Name() string { return SchemePlain }

func (Plain) Hash(plain string) (string, error) { return plain, nil }

func (Plain) Verify(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(plain), []byte(stored)) == 1
}

// Bcrypt usa golang.org/x/crypto/bcrypt.
type Bcrypt struct {
	Cost int
}

func (Bcrypt) Name() string { return SchemeBcrypt }

func (b Bcrypt) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("password: bcrypt: %w", err)
	}
	return string(h), nil
}

func (Bcrypt) Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
