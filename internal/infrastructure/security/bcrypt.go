// Package security implementa el puerto PasswordHasher con bcrypt.
package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/identity-api/internal/application/usecase"
)

var _ usecase.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hasher de passwords basado en bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher con el costo por defecto de bcrypt.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash genera el hash bcrypt del password en claro.
func (h *BcryptHasher) Hash(raw string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify compara el password en claro contra un hash almacenado.
func (h *BcryptHasher) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
