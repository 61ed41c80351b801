package queries

import (
	"errors"

	"fieldservice/internal/pkg/guard"
)

var ErrListTechniciansQueryIsNotConstructed = errors.New(
	"ListTechniciansQuery must be created via NewListTechniciansQuery constructor",
)

// ListTechniciansQuery lists every technician ordered by name.
type ListTechniciansQuery struct {
	guard guard.ConstructorGuard
}

func NewListTechniciansQuery() ListTechniciansQuery {
	return ListTechniciansQuery{guard: guard.NewConstructorGuard()}
}

func (q ListTechniciansQuery) Validate() error {
	return q.guard.Validate(ErrListTechniciansQueryIsNotConstructed)
}
