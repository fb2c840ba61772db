package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty se devuelve al intentar hashear una contraseña vacía.
var ErrEmpty = errors.New("password: contraseña vacía")

// Hasher hash de contraseñas con bcrypt (sal aleatoria por llamada).
type Hasher struct {
	cost int
}

// NewHasher construye el hasher. Un costo fuera de rango usa bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash devuelve el digest bcrypt de plaintext. Dos llamadas con la misma entrada dan digests distintos.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmpty
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(digest), nil
}

// Verify indica si plaintext corresponde a digest. Un digest malformado cuenta como no coincidente.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
