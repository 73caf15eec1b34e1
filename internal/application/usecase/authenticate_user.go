package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/application/uow"
	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/jwt"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// AuthenticateUser verifica credenciales, crea la sesión de servidor y emite
// el token — todo dentro de un único UnitOfWork, de modo que un login
// rechazado jamás deja fila de sesión. Todos los fallos colapsan en el mismo
// Unauthenticated con mensaje constante: no se filtra si falló el
// identificador o el secreto.
type AuthenticateUser struct {
	factory         uow.Factory
	hasher          PasswordHasher
	codec           *jwt.Codec
	ids             entity.IDGenerator
	sessionLifetime time.Duration
	log             *logger.Logger
	now             func() time.Time
}

// NewAuthenticateUser construye el caso de uso de login.
func NewAuthenticateUser(
	factory uow.Factory,
	hasher PasswordHasher,
	codec *jwt.Codec,
	ids entity.IDGenerator,
	sessionLifetime time.Duration,
	log *logger.Logger,
) *AuthenticateUser {
	return &AuthenticateUser{
		factory:         factory,
		hasher:          hasher,
		codec:           codec,
		ids:             ids,
		sessionLifetime: sessionLifetime,
		log:             log,
		now:             time.Now,
	}
}

// WithClock inyecta la fuente de tiempo (para tests).
func (uc *AuthenticateUser) WithClock(now func() time.Time) *AuthenticateUser {
	uc.now = now
	return uc
}

// Execute valida identifier+password y emite el resultado. El identifier se
// busca por email cuando contiene '@', por username en caso contrario.
func (uc *AuthenticateUser) Execute(ctx context.Context, in dto.LoginRequest, p outcome.Presenter[dto.AuthResult]) error {
	var result dto.AuthResult

	err := uow.Run(ctx, uc.factory, uc.log, func(u uow.UnitOfWork) error {
		users, err := uow.Users(u)
		if err != nil {
			return err
		}

		var user *entity.User
		if strings.Contains(in.Identifier, "@") {
			user, err = users.GetByEmail(ctx, in.Identifier)
		} else {
			user, err = users.GetByUsername(ctx, in.Identifier)
		}
		if err != nil {
			return err
		}
		if user == nil {
			uc.log.Warn().Str("event", "auth_failed").Str("reason", "user_not_found").Msg("login rechazado")
			return domain.ErrUnauthenticated
		}
		if !uc.hasher.Verify(in.Password, user.PasswordHash) {
			uc.log.Warn().Str("event", "auth_failed").Str("reason", "password_mismatch").Msg("login rechazado")
			return domain.ErrUnauthenticated
		}
		if !user.IsActive {
			uc.log.Warn().Str("event", "auth_failed").Str("reason", "inactive_user").Msg("login rechazado")
			return domain.ErrUnauthenticated
		}

		sessions, err := uow.Sessions(u)
		if err != nil {
			return err
		}
		session := entity.NewSession(user.ID(), uc.sessionLifetime, uc.now(), uc.ids)
		if err := sessions.Add(ctx, session); err != nil {
			return err
		}

		token, err := uc.codec.Issue(map[string]any{
			"sub":  user.ID(),
			"role": user.Role,
			"sid":  session.ID(),
		}, 0)
		if err != nil {
			return err
		}

		result = dto.AuthResult{
			Token:     token,
			SessionID: session.ID(),
			ExpiresAt: session.ExpiresAt,
			User:      toUserResponse(user),
		}
		return nil
	})

	switch {
	case err == nil:
		uc.log.Info().Str("event", "token_created").Str("user_id", result.User.ID).Msg("login exitoso")
		p.OK(result)
		return nil
	case errors.Is(err, domain.ErrUnauthenticated) || domain.IsRuleError(err):
		p.Unauthenticated("Invalid credentials")
		return nil
	default:
		return err
	}
}
