package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/application/uow"
	"github.com/jhoicas/identity-api/internal/application/usecase"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// UserHandler maneja la administración de usuarios. Los casos de uso se
// construyen por request porque llevan embebida la identidad del actor.
type UserHandler struct {
	policy  *authz.Policy
	factory uow.Factory
	hasher  usecase.PasswordHasher
	ids     entity.IDGenerator
	log     *logger.Logger
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(policy *authz.Policy, factory uow.Factory, hasher usecase.PasswordHasher, ids entity.IDGenerator, log *logger.Logger) *UserHandler {
	return &UserHandler{policy: policy, factory: factory, hasher: hasher, ids: ids, log: log}
}

// Create godoc
// @Summary      Crear usuario (solo admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, email, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	uc := usecase.NewCreateUser(h.policy, GetCurrentUser(c), h.factory, h.hasher, h.ids, h.log)
	rec := outcome.NewRecorder[dto.UserResponse]()
	if err := uc.Execute(c.UserContext(), in, rec); err != nil {
		return internalError(c)
	}
	return respond(c, rec, fiber.StatusCreated)
}

// Update godoc
// @Summary      Actualización parcial de usuario (solo admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "user id"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	uc := usecase.NewUpdateUser(h.policy, GetCurrentUser(c), h.factory, h.hasher, h.log)
	rec := outcome.NewRecorder[dto.UserResponse]()
	if err := uc.Execute(c.UserContext(), c.Params("id"), in, rec); err != nil {
		return internalError(c)
	}
	return respond(c, rec, fiber.StatusOK)
}

// Delete godoc
// @Summary      Desactivar usuario y revocar sus sesiones (solo admin)
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  dto.DetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	uc := usecase.NewDeleteUser(h.policy, GetCurrentUser(c), h.factory, h.log)
	rec := outcome.NewRecorder[dto.DetailResponse]()
	if err := uc.Execute(c.UserContext(), c.Params("id"), rec); err != nil {
		return internalError(c)
	}
	return respond(c, rec, fiber.StatusOK)
}
