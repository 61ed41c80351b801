package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrDeleteServiceOrderCommandIsNotConstructed = errors.New(
	"DeleteServiceOrderCommand must be created via NewDeleteServiceOrderCommand constructor",
)

// DeleteServiceOrderCommand removes an order and its history.
type DeleteServiceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteServiceOrderCommand(orderID kernel.UUID) (DeleteServiceOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteServiceOrderCommand{}, err
	}

	return DeleteServiceOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteServiceOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteServiceOrderCommandIsNotConstructed)
}

func (c DeleteServiceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
