// Package usecase contiene las operaciones de aplicación. Cada operación
// escribe exactamente un estado en su presentador por invocación; ningún
// error de dominio o aplicación cruza la frontera como error de Go. El
// error de retorno de Execute queda reservado para fallos de
// infraestructura, que el transporte mapea a un 500 genérico.
package usecase

import (
	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// PasswordHasher puerto de hashing de passwords; la elección del algoritmo
// vive en infraestructura.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Verify(raw, hash string) bool
}

// forbiddenSink subconjunto del presentador que necesita el gate de
// autorización.
type forbiddenSink interface {
	Forbidden(message string)
}

// authorized compone la política de autorización con la identidad ya
// resuelta por el gateway. Las operaciones mutantes lo embeben y llaman
// ensure antes de su lógica.
type authorized struct {
	op     string
	policy *authz.Policy
	actor  *entity.User
	log    *logger.Logger
}

// ensure verifica el rol del actor contra la política. Si no pasa, escribe
// Forbidden en el presentador y devuelve false; ninguna excepción escapa al
// llamador.
func (a authorized) ensure(p forbiddenSink) bool {
	if err := a.policy.Ensure(a.op, a.actor.ID(), a.actor.Role); err != nil {
		a.log.Warn().
			Str("event", "access_denied").
			Str("operation", a.op).
			Str("user_id", a.actor.ID()).
			Str("role", a.actor.Role).
			Msg("rol insuficiente")
		p.Forbidden("Forbidden")
		return false
	}
	return true
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
