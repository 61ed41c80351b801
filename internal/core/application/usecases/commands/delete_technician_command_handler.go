package commands

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
)

// DeleteTechnicianCommandHandler deletes a technician under its row lock so
// that no create, transfer or reorder can write into the route meanwhile.
type DeleteTechnicianCommandHandler struct {
	uowFactory TechnicianUoWFactory
	clock      kernel.Clock
}

func NewDeleteTechnicianCommandHandler(uowFactory TechnicianUoWFactory, clock kernel.Clock) DeleteTechnicianCommandHandler {
	return DeleteTechnicianCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *DeleteTechnicianCommandHandler) Handle(ctx context.Context, cmd DeleteTechnicianCommand) error {
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

	repo := uow.TechnicianRepository()
	tech, err := repo.GetForUpdate(ctx, cmd.TechnicianID())
	if err != nil {
		return err
	}

	tech.MarkDeleted(h.clock.Now())
	if err = repo.Delete(ctx, tech); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
