package queries

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrListRouteQueryIsNotConstructed = errors.New(
	"ListRouteQuery must be created via NewListRouteQuery constructor",
)

// ListRouteQuery returns one technician's queue ordered by position.
type ListRouteQuery struct {
	technicianID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListRouteQuery(technicianID kernel.UUID) (ListRouteQuery, error) {
	if err := technicianID.Validate(); err != nil {
		return ListRouteQuery{}, err
	}
	return ListRouteQuery{
		technicianID: technicianID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListRouteQuery) Validate() error {
	return q.guard.Validate(ErrListRouteQueryIsNotConstructed)
}

func (q ListRouteQuery) TechnicianID() kernel.UUID {
	return q.technicianID
}
