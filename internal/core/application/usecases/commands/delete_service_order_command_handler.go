package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
)

// DeleteServiceOrderCommandHandler deletes an order with its ledger. Positions
// of the remaining orders are left as they are; the gap closes on the next
// reorder.
type DeleteServiceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func NewDeleteServiceOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) DeleteServiceOrderCommandHandler {
	return DeleteServiceOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *DeleteServiceOrderCommandHandler) Handle(ctx context.Context, cmd DeleteServiceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.ServiceOrderRepository()
	order, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	order.MarkDeleted(h.clock.Now())
	if err = orderRepo.Delete(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
