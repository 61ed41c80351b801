package queries

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrListServiceOrdersQueryIsNotConstructed = errors.New(
	"ListServiceOrdersQuery must be created via NewListServiceOrdersQuery constructor",
)

// ListServiceOrdersQuery lists orders, optionally restricted to one
// technician.
//
// Example:
//
//	query, err := NewListServiceOrdersQuery(&technicianID)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListServiceOrdersQuery struct {
	technicianID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewListServiceOrdersQuery accepts a nil technicianID for "all orders".
func NewListServiceOrdersQuery(technicianID *kernel.UUID) (ListServiceOrdersQuery, error) {
	q := ListServiceOrdersQuery{guard: guard.NewConstructorGuard()}
	if technicianID != nil {
		if err := technicianID.Validate(); err != nil {
			return ListServiceOrdersQuery{}, err
		}
		id := *technicianID
		q.technicianID = &id
	}
	return q, nil
}

func (q ListServiceOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListServiceOrdersQueryIsNotConstructed)
}

func (q ListServiceOrdersQuery) TechnicianID() *kernel.UUID {
	return q.technicianID
}
