// Package uuidgen implementa el puerto IDGenerator con UUIDs v4.
package uuidgen

import (
	"github.com/google/uuid"

	"github.com/jhoicas/identity-api/internal/domain/entity"
)

var _ entity.IDGenerator = Generator{}

// Generator genera identificadores UUID v4 en formato canónico.
type Generator struct{}

// New construye el generador.
func New() Generator { return Generator{} }

// NewID devuelve un UUID v4 nuevo.
func (Generator) NewID() string { return uuid.NewString() }
