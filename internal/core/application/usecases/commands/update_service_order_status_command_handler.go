package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
)

// UpdateServiceOrderStatusCommandHandler applies a status change and appends
// the matching ledger entry in one transaction. The order row is locked for
// the duration so that concurrent changes to one order serialize.
type UpdateServiceOrderStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
	clock      kernel.Clock
}

func NewUpdateServiceOrderStatusCommandHandler(
	uowFactory LifecycleUoWFactory,
	clock kernel.Clock,
) UpdateServiceOrderStatusCommandHandler {
	return UpdateServiceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *UpdateServiceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateServiceOrderStatusCommand,
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

	orderRepo := uow.ServiceOrderRepository()
	order, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	entry, err := order.ApplyStatus(cmd.Status(), cmd.Justification(), cmd.Location(), h.clock.Now())
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
