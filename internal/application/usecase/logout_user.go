package usecase

import (
	"context"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/application/uow"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// LogoutUser elimina todas las sesiones del actor. Requiere identidad ya
// resuelta por el gateway; no hay chequeo de rol porque cualquier
// autenticado puede cerrar sus propias sesiones.
type LogoutUser struct {
	factory uow.Factory
	log     *logger.Logger
}

// NewLogoutUser construye el caso de uso de logout.
func NewLogoutUser(factory uow.Factory, log *logger.Logger) *LogoutUser {
	return &LogoutUser{factory: factory, log: log}
}

// Execute borra las sesiones del actor en una transacción propia.
func (uc *LogoutUser) Execute(ctx context.Context, actor *entity.User, p outcome.Presenter[dto.DetailResponse]) error {
	err := uow.Run(ctx, uc.factory, uc.log, func(u uow.UnitOfWork) error {
		sessions, err := uow.Sessions(u)
		if err != nil {
			return err
		}
		return sessions.DeleteByUserID(ctx, actor.ID())
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("event", "logout").Str("user_id", actor.ID()).Msg("sesiones eliminadas")
	p.OK(dto.DetailResponse{Detail: "Logout successfully."})
	return nil
}
