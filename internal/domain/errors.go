package domain

import (
	"errors"
	"fmt"
)

// Errores de aplicación (sin dependencias externas). Los adaptadores los
// producen y los casos de uso los traducen a estados de resultado.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConcurrentModified = errors.New("el recurso fue modificado concurrentemente")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
)

// RuleError violación de una regla de negocio (mutación no-op, valor fuera de
// rango, formato inválido). Se recupera localmente como error de validación;
// nunca indica un bug de infraestructura.
type RuleError struct {
	Reason string
}

func (e *RuleError) Error() string {
	return e.Reason
}

// NewRuleError construye un RuleError con formato.
func NewRuleError(format string, args ...any) *RuleError {
	return &RuleError{Reason: fmt.Sprintf(format, args...)}
}

// IsRuleError indica si err es una violación de regla de dominio.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// IsExpected indica si err pertenece a la taxonomía de errores esperados
// (dominio o aplicación). Cualquier otro error es de infraestructura y debe
// registrarse como inesperado antes del rollback.
func IsExpected(err error) bool {
	return IsRuleError(err) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrConcurrentModified) ||
		errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrForbidden)
}
