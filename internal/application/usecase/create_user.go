package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/application/uow"
	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// CreateUser crea un usuario nuevo (solo admin).
type CreateUser struct {
	authorized
	factory uow.Factory
	hasher  PasswordHasher
	ids     entity.IDGenerator
}

// NewCreateUser construye el caso de uso con la identidad ya resuelta.
func NewCreateUser(policy *authz.Policy, actor *entity.User, factory uow.Factory, hasher PasswordHasher, ids entity.IDGenerator, log *logger.Logger) *CreateUser {
	return &CreateUser{
		authorized: authorized{op: authz.OpCreateUser, policy: policy, actor: actor, log: log},
		factory:    factory,
		hasher:     hasher,
		ids:        ids,
	}
}

// Execute valida la entrada, hashea el password y persiste el usuario.
func (uc *CreateUser) Execute(ctx context.Context, in dto.CreateUserRequest, p outcome.Presenter[dto.UserResponse]) error {
	if !uc.ensure(p) {
		return nil
	}

	if err := entity.ValidateRawPassword(in.Password); err != nil {
		p.ValidationError(err.Error())
		return nil
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return err
	}
	user, err := entity.NewUser(in.Username, in.Email, hash, in.Role, uc.ids)
	if err != nil {
		if domain.IsRuleError(err) {
			p.ValidationError(err.Error())
			return nil
		}
		return err
	}

	err = uow.Run(ctx, uc.factory, uc.log, func(u uow.UnitOfWork) error {
		users, err := uow.Users(u)
		if err != nil {
			return err
		}
		return users.Add(ctx, user)
	})

	switch {
	case err == nil:
		uc.log.Info().
			Str("event", "user_created").
			Str("operation", uc.op).
			Str("user_id", user.ID()).
			Msg("usuario creado")
		p.OK(toUserResponse(user))
		return nil
	case errors.Is(err, domain.ErrDuplicate):
		p.Conflict("ya existe un usuario con ese username o email")
		return nil
	default:
		return err
	}
}
