package commands

import (
	"context"
	"fmt"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/pkg/errs"
)

// CreateTechnicianCommandHandler registers a technician with a unique email.
// The email check runs in the transaction; the unique index in the store
// catches the remaining race and is reported the same way.
type CreateTechnicianCommandHandler struct {
	uowFactory TechnicianUoWFactory
	clock      kernel.Clock
}

func NewCreateTechnicianCommandHandler(uowFactory TechnicianUoWFactory, clock kernel.Clock) CreateTechnicianCommandHandler {
	return CreateTechnicianCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CreateTechnicianCommandHandler) Handle(
	ctx context.Context,
	cmd CreateTechnicianCommand,
) (*technician.Technician, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tech, err := technician.NewTechnician(cmd.TechnicianID(), cmd.Name(), cmd.Email(), cmd.Password(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.TechnicianRepository()
	taken, err := repo.ExistsByEmail(ctx, tech.Email())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewConflictStateErrorWithCause("email", fmt.Errorf("%s is already registered", tech.Email()))
	}

	if err = repo.Add(ctx, tech); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tech, nil
}
