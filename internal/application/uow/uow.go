// Package uow define el puerto Unit-of-Work: una transacción del store por
// operación lógica, con commit en éxito, rollback en cualquier fallo de
// dominio/aplicación y liberación garantizada de la conexión en todos los
// caminos de salida.
package uow

import (
	"context"
	"fmt"

	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/repository"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// RepoKind etiqueta de un tipo de repositorio. Conjunto cerrado: el registro
// explícito evita despacho por tipo en runtime.
type RepoKind string

const (
	KindUsers    RepoKind = "users"
	KindSessions RepoKind = "sessions"
)

// UnitOfWork posee una transacción del store durante una operación lógica.
// Nunca se comparte entre operaciones ni se reutiliza después de Close.
type UnitOfWork interface {
	// Repo resuelve un repositorio atado a esta transacción; falla si el
	// kind no fue registrado en la fábrica.
	Repo(kind RepoKind) (any, error)
	// Commit y Rollback finalizan la transacción exactamente una vez.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	// Close libera la conexión sin importar el desenlace; es seguro
	// llamarlo después de Commit o Rollback.
	Close(ctx context.Context) error
}

// Factory crea un UnitOfWork nuevo por operación.
type Factory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// Users resuelve el repositorio de usuarios atado a la transacción de u.
func Users(u UnitOfWork) (repository.UserRepository, error) {
	raw, err := u.Repo(KindUsers)
	if err != nil {
		return nil, err
	}
	repo, ok := raw.(repository.UserRepository)
	if !ok {
		return nil, fmt.Errorf("uow: el registro de %q no implementa UserRepository", KindUsers)
	}
	return repo, nil
}

// Sessions resuelve el repositorio de sesiones atado a la transacción de u.
func Sessions(u UnitOfWork) (repository.SessionRepository, error) {
	raw, err := u.Repo(KindSessions)
	if err != nil {
		return nil, err
	}
	repo, ok := raw.(repository.SessionRepository)
	if !ok {
		return nil, fmt.Errorf("uow: el registro de %q no implementa SessionRepository", KindSessions)
	}
	return repo, nil
}

// Run ejecuta fn dentro de un UnitOfWork nuevo con la forma
// adquirir-con-liberación-garantizada: commit si fn no devolvió error,
// rollback en caso contrario, y Close siempre — incluso si commit o rollback
// fallan o fn entra en pánico. Los errores que no pertenecen a la taxonomía
// esperada se registran como inesperados antes del rollback, porque indican
// un bug y no un rechazo de negocio.
func Run(ctx context.Context, f Factory, log *logger.Logger, fn func(u UnitOfWork) error) error {
	u, err := f.Begin(ctx)
	if err != nil {
		return fmt.Errorf("uow: abrir transacción: %w", err)
	}
	defer func() {
		_ = u.Close(ctx)
	}()

	if err := fn(u); err != nil {
		if !domain.IsExpected(err) {
			log.Error().Err(err).Msg("error de infraestructura dentro del UnitOfWork")
		}
		_ = u.Rollback(ctx)
		return err
	}
	if err := u.Commit(ctx); err != nil {
		return fmt.Errorf("uow: commit: %w", err)
	}
	return nil
}
