package commands

import (
	"errors"
	"slices"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/pkg/guard"
)

var ErrReorderRouteCommandIsNotConstructed = errors.New(
	"ReorderRouteCommand must be created via NewReorderRouteCommand constructor",
)

// ReorderRouteCommand carries the desired sequence of order ids. Position i
// goes to orderIDs[i]. An empty sequence is valid and changes nothing.
type ReorderRouteCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewReorderRouteCommand rejects nil and duplicate ids.
func NewReorderRouteCommand(orderIDs []kernel.UUID) (ReorderRouteCommand, error) {
	if err := services.NewRouteQueue().ValidateSequence(orderIDs); err != nil {
		return ReorderRouteCommand{}, err
	}

	return ReorderRouteCommand{
		orderIDs: slices.Clone(orderIDs),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReorderRouteCommand) Validate() error {
	return c.guard.Validate(ErrReorderRouteCommandIsNotConstructed)
}

// OrderIDs returns a copy of the requested sequence.
func (c ReorderRouteCommand) OrderIDs() []kernel.UUID {
	return slices.Clone(c.orderIDs)
}
