package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
)

// unauthorized escribe el 401 canónico del gateway: mismo shape para todas
// las causas, con el challenge WWW-Authenticate que exige Bearer.
func unauthorized(c *fiber.Ctx, code, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="api"`)
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// respond traduce el estado registrado por el caso de uso al HTTP
// correspondiente. Un recorder sin escritura tras un Execute sin error es un
// bug del caso de uso y se responde como 500.
func respond[T any](c *fiber.Ctx, rec *outcome.Recorder[T], okStatus int) error {
	switch rec.State() {
	case outcome.StateOK:
		return c.Status(okStatus).JSON(rec.Value())
	case outcome.StateValidationError:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: rec.Message()})
	case outcome.StateUnauthenticated:
		return unauthorized(c, "UNAUTHORIZED", rec.Message())
	case outcome.StateForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: rec.Message()})
	case outcome.StateConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: rec.Message()})
	case outcome.StateNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: rec.Message()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "resultado no emitido"})
	}
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
