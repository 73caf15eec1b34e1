package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/application/usecase"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// ResourceHandler expone los recursos protegidos por rol.
type ResourceHandler struct {
	policy *authz.Policy
	log    *logger.Logger
}

// NewResourceHandler construye el handler de recursos.
func NewResourceHandler(policy *authz.Policy, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{policy: policy, log: log}
}

// Orders godoc
// @Summary      Ver pedidos (admin, manager)
// @Tags         resources
// @Produce      json
// @Success      200  {object}  dto.DetailResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *ResourceHandler) Orders(c *fiber.Ctx) error {
	uc := usecase.NewViewOrders(h.policy, GetCurrentUser(c), h.log)
	rec := outcome.NewRecorder[dto.DetailResponse]()
	if err := uc.Execute(c.UserContext(), rec); err != nil {
		return internalError(c)
	}
	return respond(c, rec, fiber.StatusOK)
}

// Payments godoc
// @Summary      Ver pagos (solo admin)
// @Tags         resources
// @Produce      json
// @Success      200  {object}  dto.DetailResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/payments [get]
func (h *ResourceHandler) Payments(c *fiber.Ctx) error {
	uc := usecase.NewViewPayments(h.policy, GetCurrentUser(c), h.log)
	rec := outcome.NewRecorder[dto.DetailResponse]()
	if err := uc.Execute(c.UserContext(), rec); err != nil {
		return internalError(c)
	}
	return respond(c, rec, fiber.StatusOK)
}
