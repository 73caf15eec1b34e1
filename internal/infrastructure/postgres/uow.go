package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/identity-api/internal/application/uow"
)

// querier subconjunto de pgx.Tx que usan los repositorios. Mantenerlo como
// interfaz permite atar el mismo repositorio a una transacción o a un pool
// en tests de integración.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepoConstructor construye un repositorio atado al querier de la transacción.
type RepoConstructor func(q querier) any

// UoWFactory fábrica de unidades de trabajo sobre pgxpool. El registro de
// constructores se fija al construir la fábrica; Begin solo lo consulta.
type UoWFactory struct {
	pool     *pgxpool.Pool
	registry map[uow.RepoKind]RepoConstructor
}

var _ uow.Factory = (*UoWFactory)(nil)

// NewUoWFactory construye la fábrica con los repositorios estándar ya
// registrados.
func NewUoWFactory(pool *pgxpool.Pool) *UoWFactory {
	f := &UoWFactory{pool: pool, registry: map[uow.RepoKind]RepoConstructor{}}
	f.Register(uow.KindUsers, func(q querier) any { return NewUserRepository(q) })
	f.Register(uow.KindSessions, func(q querier) any { return NewSessionRepository(q) })
	return f
}

// Register asocia un kind con su constructor. Registrar dos veces el mismo
// kind reemplaza el anterior.
func (f *UoWFactory) Register(kind uow.RepoKind, ctor RepoConstructor) {
	f.registry[kind] = ctor
}

// Begin abre una transacción nueva y la envuelve en un UnitOfWork.
func (f *UoWFactory) Begin(ctx context.Context) (uow.UnitOfWork, error) {
	tx, err := f.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &PgxUnitOfWork{tx: tx, registry: f.registry, repos: map[uow.RepoKind]any{}}, nil
}

// PgxUnitOfWork una transacción PostgreSQL por operación lógica. Commit y
// Rollback finalizan la transacción una sola vez; Close hace rollback de una
// transacción todavía abierta y deja la unidad inutilizable.
type PgxUnitOfWork struct {
	tx       pgx.Tx
	registry map[uow.RepoKind]RepoConstructor
	repos    map[uow.RepoKind]any
	done     bool
	closed   bool
}

var _ uow.UnitOfWork = (*PgxUnitOfWork)(nil)

// Repo resuelve (y cachea) el repositorio del kind atado a esta transacción.
func (u *PgxUnitOfWork) Repo(kind uow.RepoKind) (any, error) {
	if u.closed {
		return nil, errors.New("uow: unidad de trabajo ya cerrada")
	}
	if repo, ok := u.repos[kind]; ok {
		return repo, nil
	}
	ctor, ok := u.registry[kind]
	if !ok {
		return nil, fmt.Errorf("uow: kind %q no registrado", kind)
	}
	repo := ctor(u.tx)
	u.repos[kind] = repo
	return repo, nil
}

// Commit confirma la transacción. Falla si la unidad ya finalizó.
func (u *PgxUnitOfWork) Commit(ctx context.Context) error {
	if u.closed || u.done {
		return errors.New("uow: la transacción ya finalizó")
	}
	u.done = true
	if err := u.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback revierte la transacción. Falla si la unidad ya finalizó.
func (u *PgxUnitOfWork) Rollback(ctx context.Context) error {
	if u.closed || u.done {
		return errors.New("uow: la transacción ya finalizó")
	}
	u.done = true
	if err := u.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// Close libera la transacción: si sigue abierta hace rollback. Idempotente;
// seguro después de Commit o Rollback.
func (u *PgxUnitOfWork) Close(ctx context.Context) error {
	if u.closed {
		return nil
	}
	u.closed = true
	if u.done {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("close transaction: %w", err)
	}
	return nil
}
