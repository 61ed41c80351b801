package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrTransferServiceOrderCommandIsNotConstructed = errors.New(
		"TransferServiceOrderCommand must be created via NewTransferServiceOrderCommand constructor",
	)
	ErrTechnicianIDIsRequired = errs.NewValueIsRequiredError("technicianId")
)

// TransferServiceOrderCommand reassigns an order to another technician.
type TransferServiceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	technicianID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransferServiceOrderCommand fails with ErrTechnicianIDIsRequired when the
// destination is absent.
func NewTransferServiceOrderCommand(orderID kernel.UUID, technicianID *kernel.UUID) (TransferServiceOrderCommand, error) {
	cmd := TransferServiceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTechnicianID(technicianID),
	); err != nil {
		return TransferServiceOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransferServiceOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransferServiceOrderCommandIsNotConstructed)
}

func (c TransferServiceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransferServiceOrderCommand) TechnicianID() kernel.UUID {
	return c.technicianID
}

func (c *TransferServiceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransferServiceOrderCommand) setTechnicianID(technicianID *kernel.UUID) error {
	if technicianID == nil || technicianID.Validate() != nil {
		return ErrTechnicianIDIsRequired
	}

	c.technicianID = *technicianID
	return nil
}
