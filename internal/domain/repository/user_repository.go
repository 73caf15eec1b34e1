package repository

import (
	"context"

	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP). Las
// implementaciones quedan atadas a la transacción del UnitOfWork que las
// resolvió.
//
// Convenciones de error: Add y Save devuelven domain.ErrDuplicate en
// violación de unicidad; Save devuelve domain.ErrConcurrentModified cuando
// el UPDATE esperado de una fila afecta cero filas. Los Get* devuelven
// (nil, nil) cuando no hay fila.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Add(ctx context.Context, user *entity.User) error
	Save(ctx context.Context, user *entity.User) error
}
