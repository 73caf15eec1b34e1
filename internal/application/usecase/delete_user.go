package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/application/uow"
	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// DeleteUser desactiva un usuario y elimina sus sesiones en la misma
// transacción (solo admin). El borrado es lógico: la fila queda con
// is_active = false para conservar la historia.
type DeleteUser struct {
	authorized
	factory uow.Factory
}

// NewDeleteUser construye el caso de uso con la identidad ya resuelta.
func NewDeleteUser(policy *authz.Policy, actor *entity.User, factory uow.Factory, log *logger.Logger) *DeleteUser {
	return &DeleteUser{
		authorized: authorized{op: authz.OpDeleteUser, policy: policy, actor: actor, log: log},
		factory:    factory,
	}
}

// Execute desactiva al usuario indicado y revoca sus sesiones vivas.
func (uc *DeleteUser) Execute(ctx context.Context, id string, p outcome.Presenter[dto.DetailResponse]) error {
	if !uc.ensure(p) {
		return nil
	}

	err := uow.Run(ctx, uc.factory, uc.log, func(u uow.UnitOfWork) error {
		users, err := uow.Users(u)
		if err != nil {
			return err
		}
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
		}
		if err := user.Deactivate(); err != nil {
			return err
		}
		if err := users.Save(ctx, user); err != nil {
			return err
		}

		// Un usuario desactivado no debe conservar sesiones utilizables.
		sessions, err := uow.Sessions(u)
		if err != nil {
			return err
		}
		return sessions.DeleteByUserID(ctx, user.ID())
	})

	switch {
	case err == nil:
		uc.log.Info().
			Str("event", "user_deleted").
			Str("operation", uc.op).
			Str("user_id", id).
			Msg("usuario desactivado")
		p.OK(dto.DetailResponse{Detail: fmt.Sprintf("usuario %s eliminado", id)})
		return nil
	case errors.Is(err, domain.ErrNotFound):
		p.NotFound(fmt.Sprintf("usuario %s no encontrado", id))
		return nil
	case domain.IsRuleError(err):
		p.ValidationError(err.Error())
		return nil
	case errors.Is(err, domain.ErrConcurrentModified):
		p.Conflict("el usuario fue modificado concurrentemente")
		return nil
	default:
		return err
	}
}
