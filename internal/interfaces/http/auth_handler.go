package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/application/usecase"
)

// LoginThrottle limita intentos de login por identificador+IP. Con nil el
// handler no limita.
type LoginThrottle interface {
	Allow(ctx context.Context, identifier, ip string) bool
	Reset(ctx context.Context, identifier, ip string)
}

// AuthHandler maneja login y logout.
type AuthHandler struct {
	login      *usecase.AuthenticateUser
	logout     *usecase.LogoutUser
	throttle   LoginThrottle
	cookieName string
	secure     bool
}

// NewAuthHandler construye el handler de auth. secure controla el flag
// Secure del cookie de sesión (true en producción).
func NewAuthHandler(login *usecase.AuthenticateUser, logout *usecase.LogoutUser, throttle LoginThrottle, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		login:      login,
		logout:     logout,
		throttle:   throttle,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "identifier, password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Identifier == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "identifier y password son requeridos"})
	}
	if h.throttle != nil && !h.throttle.Allow(c.UserContext(), in.Identifier, c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_ATTEMPTS", Message: "demasiados intentos, intente más tarde"})
	}

	rec := outcome.NewRecorder[dto.AuthResult]()
	if err := h.login.Execute(c.UserContext(), in, rec); err != nil {
		return internalError(c)
	}
	if rec.State() != outcome.StateOK {
		return respond(c, rec, fiber.StatusOK)
	}

	res := rec.Value()
	if h.throttle != nil {
		h.throttle.Reset(c.UserContext(), in.Identifier, c.IP())
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    res.SessionID,
		Expires:  res.ExpiresAt,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.TokenResponse{AccessToken: res.Token, TokenType: "bearer"})
}

// Logout godoc
// @Summary      Cerrar sesión (elimina todas las sesiones del usuario)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.DetailResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	actor := GetCurrentUser(c)
	if actor == nil {
		return unauthorized(c, "UNAUTHORIZED", "no autenticado")
	}

	rec := outcome.NewRecorder[dto.DetailResponse]()
	if err := h.logout.Execute(c.UserContext(), actor, rec); err != nil {
		return internalError(c)
	}

	// Invalidar el cookie junto con las sesiones del servidor.
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return respond(c, rec, fiber.StatusOK)
}
