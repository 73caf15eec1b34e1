package usecase

import (
	"context"

	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/dto"
	"github.com/jhoicas/identity-api/internal/application/outcome"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/pkg/logger"
)

// ViewOrders recurso de demostración protegido por rol (admin, manager). No
// abre UnitOfWork: no toca el store.
type ViewOrders struct {
	authorized
}

// NewViewOrders construye el caso de uso con la identidad ya resuelta.
func NewViewOrders(policy *authz.Policy, actor *entity.User, log *logger.Logger) *ViewOrders {
	return &ViewOrders{authorized: authorized{op: authz.OpViewOrders, policy: policy, actor: actor, log: log}}
}

// Execute pasa el gate de rol y emite el detalle.
func (uc *ViewOrders) Execute(_ context.Context, p outcome.Presenter[dto.DetailResponse]) error {
	if !uc.ensure(p) {
		return nil
	}
	p.OK(dto.DetailResponse{Detail: "You are allowed to view orders."})
	return nil
}

// ViewPayments recurso de demostración protegido por rol (solo admin).
type ViewPayments struct {
	authorized
}

// NewViewPayments construye el caso de uso con la identidad ya resuelta.
func NewViewPayments(policy *authz.Policy, actor *entity.User, log *logger.Logger) *ViewPayments {
	return &ViewPayments{authorized: authorized{op: authz.OpViewPayments, policy: policy, actor: actor, log: log}}
}

// Execute pasa el gate de rol y emite el detalle.
func (uc *ViewPayments) Execute(_ context.Context, p outcome.Presenter[dto.DetailResponse]) error {
	if !uc.ensure(p) {
		return nil
	}
	p.OK(dto.DetailResponse{Detail: "You are allowed to view payments."})
	return nil
}
