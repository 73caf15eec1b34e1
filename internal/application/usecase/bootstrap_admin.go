package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/identity-api/internal/application/uow"
	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// BootstrapAdmin siembra el admin inicial en el arranque si no existe.
// Idempotente: si el username ya está tomado (por esta u otra réplica
// arrancando en paralelo) no es un error.
func BootstrapAdmin(ctx context.Context, factory uow.Factory, hasher PasswordHasher, ids entity.IDGenerator, username, email, password string, log *logger.Logger) error {
	if err := entity.ValidateRawPassword(password); err != nil {
		return err
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	admin, err := entity.NewUser(username, email, hash, entity.RoleAdmin, ids)
	if err != nil {
		return err
	}

	err = uow.Run(ctx, factory, log, func(u uow.UnitOfWork) error {
		users, err := uow.Users(u)
		if err != nil {
			return err
		}
		existing, err := users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		return users.Add(ctx, admin)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		log.Info().Str("event", "bootstrap_skipped").Str("username", username).Msg("admin inicial ya existe")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("event", "bootstrap_admin_created").Str("user_id", admin.ID()).Msg("admin inicial creado")
	return nil
}
