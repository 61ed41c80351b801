package queries

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrGetServiceOrderHistoryQueryIsNotConstructed = errors.New(
	"GetServiceOrderHistoryQuery must be created via NewGetServiceOrderHistoryQuery constructor",
)

// GetServiceOrderHistoryQuery returns the status ledger of one order.
type GetServiceOrderHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetServiceOrderHistoryQuery(orderID kernel.UUID) (GetServiceOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetServiceOrderHistoryQuery{}, err
	}
	return GetServiceOrderHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetServiceOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetServiceOrderHistoryQueryIsNotConstructed)
}

func (q GetServiceOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}
