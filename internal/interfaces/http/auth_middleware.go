package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/uow"
	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/jwt"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// Locals keys en Fiber, cargadas por el SessionGuard.
const (
	LocalUser   = "current_user"
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// SessionGuard autentica cada request protegida con ambos factores: el
// Bearer token debe decodificar y el cookie de sesión debe coincidir con el
// claim sid; recién entonces se consulta la sesión de servidor y se carga el
// usuario dueño en Locals. Cualquier factor ausente o inconsistente produce
// el mismo 401 con challenge.
type SessionGuard struct {
	codec      *jwt.Codec
	factory    uow.Factory
	cookieName string
	log        *logger.Logger
	now        func() time.Time
}

// NewSessionGuard construye el gateway de autenticación.
func NewSessionGuard(codec *jwt.Codec, factory uow.Factory, cookieName string, log *logger.Logger) *SessionGuard {
	return &SessionGuard{
		codec:      codec,
		factory:    factory,
		cookieName: cookieName,
		log:        log,
		now:        time.Now,
	}
}

// WithClock inyecta la fuente de tiempo (para tests).
func (g *SessionGuard) WithClock(now func() time.Time) *SessionGuard {
	g.now = now
	return g
}

// extractBearer obtiene la credencial bearer del header Authorization.
func extractBearer(c *fiber.Ctx) (entity.Credential, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return entity.Credential{}, errors.New("Authorization header requerido")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return entity.Credential{}, errors.New("formato: Bearer <token>")
	}
	cred := entity.BearerCredential(strings.TrimSpace(parts[1]))
	if cred.Empty() {
		return entity.Credential{}, errors.New("token vacío")
	}
	return cred, nil
}

// Handler devuelve el middleware Fiber del guard.
func (g *SessionGuard) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer, err := extractBearer(c)
		if err != nil {
			return unauthorized(c, "MISSING_TOKEN", err.Error())
		}

		claims, err := g.codec.DecodeAuthorized(bearer.Value, true)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return unauthorized(c, "TOKEN_EXPIRED", "token expirado")
		case err != nil:
			return unauthorized(c, "INVALID_TOKEN", "token inválido")
		}

		// Segundo factor: el cookie debe existir y coincidir con el sid del
		// token. Un token válido robado sin su cookie no pasa.
		cookie := entity.CookieCredential(c.Cookies(g.cookieName))
		if cookie.Empty() || cookie.Value != claims.SessionID {
			g.log.Warn().Str("event", "gateway_rejected").Str("reason", "cookie_mismatch").Msg("request rechazada")
			return unauthorized(c, "INVALID_SESSION", "sesión inválida")
		}

		var user *entity.User
		err = uow.Run(c.UserContext(), g.factory, g.log, func(u uow.UnitOfWork) error {
			sessions, err := uow.Sessions(u)
			if err != nil {
				return err
			}
			found, err := sessions.GetActiveUser(c.UserContext(), claims.SessionID, g.now())
			if err != nil {
				return err
			}
			if found == nil {
				return domain.ErrUnauthenticated
			}
			user = found
			return nil
		})
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			g.log.Warn().Str("event", "gateway_rejected").Str("reason", "session_not_active").Msg("request rechazada")
			return unauthorized(c, "INVALID_SESSION", "sesión inválida")
		case err != nil:
			g.log.Error().Err(err).Msg("gateway: consulta de sesión")
			return internalError(c)
		}

		if !user.IsActive {
			g.log.Warn().Str("event", "gateway_rejected").Str("reason", "inactive_user").Str("user_id", user.ID()).Msg("request rechazada")
			return unauthorized(c, "INVALID_SESSION", "sesión inválida")
		}
		if user.ID() != claims.Subject {
			g.log.Warn().Str("event", "gateway_rejected").Str("reason", "subject_mismatch").Msg("request rechazada")
			return unauthorized(c, "INVALID_SESSION", "sesión inválida")
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID())
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// GetCurrentUser devuelve el usuario autenticado (después del SessionGuard).
func GetCurrentUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// GetUserID devuelve el UserID del contexto (después del SessionGuard).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del SessionGuard).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
