package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/core/domain/services"
)

// TransferServiceOrderCommandHandler moves an order to the tail of another
// technician's route, resets it to PENDING and records TRANSFERRED in the
// ledger. Either all of that commits or none of it does.
//
// Locks are taken destination technician first, then the order, the same
// order used by every handler that writes into a route.
type TransferServiceOrderCommandHandler struct {
	uowFactory UoWFactory
	routeQueue services.RouteQueue
	clock      kernel.Clock
}

func NewTransferServiceOrderCommandHandler(uowFactory UoWFactory, clock kernel.Clock) TransferServiceOrderCommandHandler {
	return TransferServiceOrderCommandHandler{
		uowFactory: uowFactory,
		routeQueue: services.NewRouteQueue(),
		clock:      clock,
	}
}

func (h *TransferServiceOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransferServiceOrderCommand,
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

	technicianID := cmd.TechnicianID()
	if _, err := uow.TechnicianRepository().GetForUpdate(ctx, technicianID); err != nil {
		return nil, err
	}

	orderRepo := uow.ServiceOrderRepository()
	order, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	maxPosition, err := orderRepo.MaxPosition(ctx, &technicianID)
	if err != nil {
		return nil, err
	}

	entry, err := order.TransferTo(technicianID, h.routeQueue.NextPosition(maxPosition), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.HistoryRepository().Record(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
