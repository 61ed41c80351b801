package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrDeleteTechnicianCommandIsNotConstructed = errors.New(
	"DeleteTechnicianCommand must be created via NewDeleteTechnicianCommand constructor",
)

// DeleteTechnicianCommand removes a technician together with its route and
// the history of every order on it.
type DeleteTechnicianCommand struct { //nolint:recvcheck //using for validation
	technicianID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteTechnicianCommand(technicianID kernel.UUID) (DeleteTechnicianCommand, error) {
	if err := technicianID.Validate(); err != nil {
		return DeleteTechnicianCommand{}, err
	}

	return DeleteTechnicianCommand{
		technicianID: technicianID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteTechnicianCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTechnicianCommandIsNotConstructed)
}

func (c DeleteTechnicianCommand) TechnicianID() kernel.UUID {
	return c.technicianID
}
