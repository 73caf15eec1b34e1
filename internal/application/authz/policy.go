// Package authz implementa la política de autorización por roles: una tabla
// estática nombre-de-operación → conjunto de roles aceptados. La comparación
// es pertenencia a conjunto, no jerarquía: admin no queda autorizado
// implícitamente, lo que obliga a que la tabla sea exhaustiva y auditable.
package authz

import (
	"fmt"
	"slices"

	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// Nombres de operación registrados en la política por defecto.
const (
	OpCreateUser   = "create_user"
	OpUpdateUser   = "update_user"
	OpDeleteUser   = "delete_user"
	OpViewOrders   = "view_orders"
	OpViewPayments = "view_payments"
)

// Policy tabla inmutable operación → roles permitidos. Construida una vez en
// el arranque; segura para lectura concurrente.
type Policy struct {
	table map[string][]string
}

// NewPolicy construye la política por defecto de la aplicación.
func NewPolicy() *Policy {
	return &Policy{table: map[string][]string{
		OpCreateUser:   {entity.RoleAdmin},
		OpUpdateUser:   {entity.RoleAdmin},
		OpDeleteUser:   {entity.RoleAdmin},
		OpViewOrders:   {entity.RoleAdmin, entity.RoleManager},
		OpViewPayments: {entity.RoleAdmin},
	}}
}

// NewPolicyFromTable construye una política con una tabla explícita (tests).
func NewPolicyFromTable(table map[string][]string) *Policy {
	copied := make(map[string][]string, len(table))
	for op, roles := range table {
		copied[op] = slices.Clone(roles)
	}
	return &Policy{table: copied}
}

// Required devuelve los roles aceptados para una operación.
func (p *Policy) Required(operation string) ([]string, bool) {
	roles, ok := p.table[operation]
	return roles, ok
}

// Ensure verifica que el actor pueda ejecutar la operación. Una operación no
// registrada en la tabla se niega siempre: la tabla es la lista exhaustiva.
func (p *Policy) Ensure(operation, actorID, actorRole string) error {
	required, ok := p.table[operation]
	if !ok {
		return fmt.Errorf("%w: operación %q sin política registrada", domain.ErrForbidden, operation)
	}
	return EnsureRole(actorID, actorRole, required)
}

// EnsureRole retorna nil si actorRole pertenece al conjunto requerido; en
// caso contrario falla con domain.ErrForbidden. actorID viaja solo para
// contexto del error (auditoría), no participa en la decisión.
func EnsureRole(actorID, actorRole string, required []string) error {
	if slices.Contains(required, actorRole) {
		return nil
	}
	return fmt.Errorf("%w: actor %s con rol %s", domain.ErrForbidden, actorID, actorRole)
}
