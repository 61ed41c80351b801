package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/pkg/errs"
)

// ReorderRouteCommandHandler rewrites queue positions so that the requested
// ids take positions 0..n-1 in order.
//
// Workflow:
//   - resolve the ids; any missing id fails with ObjectNotFoundError
//   - lock the owning technicians in id order
//   - re-read the touched queues under the locks and let RouteQueue compute
//     the new positions
//   - write every order whose position changed; uniqueness is checked by the
//     store at commit
type ReorderRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	routeQueue services.RouteQueue
	clock      kernel.Clock
}

func NewReorderRouteCommandHandler(uowFactory RouteUoWFactory, clock kernel.Clock) ReorderRouteCommandHandler {
	return ReorderRouteCommandHandler{
		uowFactory: uowFactory,
		routeQueue: services.NewRouteQueue(),
		clock:      clock,
	}
}

func (h *ReorderRouteCommandHandler) Handle(ctx context.Context, cmd ReorderRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ids := cmd.OrderIDs()
	if len(ids) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.ServiceOrderRepository()
	listed, err := orderRepo.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	if len(listed) != len(ids) {
		return missingOrder(ids, listed)
	}

	technicianRepo := uow.TechnicianRepository()
	technicians := h.routeQueue.TechniciansOf(listed)
	for _, technicianID := range technicians {
		if _, err = technicianRepo.GetForUpdate(ctx, technicianID); err != nil {
			return err
		}
	}

	queue, err := orderRepo.ListByTechnicians(ctx, technicians)
	if err != nil {
		return err
	}
	relisted, err := orderRepo.GetMany(ctx, ids)
	if err != nil {
		return err
	}

	changed, err := h.routeQueue.Reorder(ids, append(queue, relisted...), h.clock.Now())
	if err != nil {
		return err
	}

	for _, order := range changed {
		if err = orderRepo.Update(ctx, order); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func missingOrder(ids []kernel.UUID, found []*serviceorder.ServiceOrder) error {
	present := make(map[kernel.UUID]struct{}, len(found))
	for _, o := range found {
		present[o.ID()] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			return errs.NewObjectNotFoundError("orderId", id)
		}
	}
	return errs.NewObjectNotFoundError("orderId", ids)
}
