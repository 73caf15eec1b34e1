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

// UpdateUser actualización parcial de un usuario (solo admin). Cada campo
// presente pasa por el mutador de dominio correspondiente, que rechaza las
// mutaciones no-op.
type UpdateUser struct {
	authorized
	factory uow.Factory
	hasher  PasswordHasher
}

// NewUpdateUser construye el caso de uso con la identidad ya resuelta.
func NewUpdateUser(policy *authz.Policy, actor *entity.User, factory uow.Factory, hasher PasswordHasher, log *logger.Logger) *UpdateUser {
	return &UpdateUser{
		authorized: authorized{op: authz.OpUpdateUser, policy: policy, actor: actor, log: log},
		factory:    factory,
		hasher:     hasher,
	}
}

// Execute carga el usuario, aplica los mutadores y guarda con chequeo
// optimista (cero filas actualizadas ⇒ conflicto de concurrencia).
func (uc *UpdateUser) Execute(ctx context.Context, id string, in dto.UpdateUserRequest, p outcome.Presenter[dto.UserResponse]) error {
	if !uc.ensure(p) {
		return nil
	}
	if in.Empty() {
		p.ValidationError("no hay campos para actualizar")
		return nil
	}

	var updated *entity.User
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

		if in.Username != nil {
			if err := user.ChangeUsername(*in.Username); err != nil {
				return err
			}
		}
		if in.Email != nil {
			if err := user.ChangeEmail(*in.Email); err != nil {
				return err
			}
		}
		if in.Password != nil {
			if err := entity.ValidateRawPassword(*in.Password); err != nil {
				return err
			}
			hash, err := uc.hasher.Hash(*in.Password)
			if err != nil {
				return err
			}
			if err := user.ChangePassword(hash); err != nil {
				return err
			}
		}
		if in.Role != nil {
			if err := user.ChangeRole(*in.Role); err != nil {
				return err
			}
		}

		if err := users.Save(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})

	switch {
	case err == nil:
		uc.log.Info().
			Str("event", "user_updated").
			Str("operation", uc.op).
			Str("user_id", updated.ID()).
			Msg("usuario actualizado")
		p.OK(toUserResponse(updated))
		return nil
	case errors.Is(err, domain.ErrNotFound):
		p.NotFound(fmt.Sprintf("usuario %s no encontrado", id))
		return nil
	case domain.IsRuleError(err):
		p.ValidationError(err.Error())
		return nil
	case errors.Is(err, domain.ErrDuplicate):
		p.Conflict("ya existe un usuario con esos atributos únicos")
		return nil
	case errors.Is(err, domain.ErrConcurrentModified):
		p.Conflict("el usuario fue modificado concurrentemente")
		return nil
	default:
		return err
	}
}
