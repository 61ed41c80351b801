package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/core/domain/services"
)

// CreateServiceOrderCommandHandler opens a PENDING order at the tail of its
// technician's route. The technician row is locked while the tail position is
// computed so that concurrent creates never share a position.
type CreateServiceOrderCommandHandler struct {
	uowFactory RouteUoWFactory
	routeQueue services.RouteQueue
	clock      kernel.Clock
}

func NewCreateServiceOrderCommandHandler(
	uowFactory RouteUoWFactory,
	clock kernel.Clock,
) CreateServiceOrderCommandHandler {
	return CreateServiceOrderCommandHandler{
		uowFactory: uowFactory,
		routeQueue: services.NewRouteQueue(),
		clock:      clock,
	}
}

// Handle returns the created order. A missing technician fails with an
// ObjectNotFoundError and nothing is written.
func (h *CreateServiceOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateServiceOrderCommand,
) (*serviceorder.ServiceOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.TechnicianID() != nil {
		if _, err := uow.TechnicianRepository().GetForUpdate(ctx, *cmd.TechnicianID()); err != nil {
			return nil, err
		}
	}

	orderRepo := uow.ServiceOrderRepository()
	maxPosition, err := orderRepo.MaxPosition(ctx, cmd.TechnicianID())
	if err != nil {
		return nil, err
	}

	order, err := serviceorder.NewServiceOrder(
		cmd.OrderID(),
		cmd.Details(),
		cmd.TechnicianID(),
		h.routeQueue.NextPosition(maxPosition),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
