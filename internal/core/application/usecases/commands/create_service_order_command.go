package commands

import (
	"errors"
	"strings"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrCreateServiceOrderCommandIsNotConstructed = errors.New(
		"CreateServiceOrderCommand must be created via NewCreateServiceOrderCommand constructor",
	)
	ErrClientNameIsRequired = errs.NewValueIsRequiredError("clientName")
	ErrAddressIsRequired    = errs.NewValueIsRequiredError("address")
)

// CreateServiceOrderCommand represents a request to open a new service order
// at the tail of a technician's route.
//
// Example:
//
//	technicianID := kernel.NewUUID()
//	cmd, err := NewCreateServiceOrderCommand(kernel.NewUUID(), serviceorder.Details{
//	    OrderNumber: 1042,
//	    ClientName:  "ACME",
//	    Address:     "Rua das Flores, 100",
//	}, &technicianID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	order, err := handler.Handle(ctx, cmd)
type CreateServiceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	details      serviceorder.Details
	technicianID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateServiceOrderCommand validates identity and the required details.
// technicianID may be nil to leave the order unassigned.
func NewCreateServiceOrderCommand(
	orderID kernel.UUID,
	details serviceorder.Details,
	technicianID *kernel.UUID,
) (CreateServiceOrderCommand, error) {
	cmd := CreateServiceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDetails(details),
		cmd.setTechnicianID(technicianID),
	); err != nil {
		return CreateServiceOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateServiceOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceOrderCommandIsNotConstructed)
}

func (c CreateServiceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateServiceOrderCommand) Details() serviceorder.Details {
	return c.details
}

// TechnicianID is nil for an unassigned order.
func (c CreateServiceOrderCommand) TechnicianID() *kernel.UUID {
	return c.technicianID
}

func (c *CreateServiceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateServiceOrderCommand) setDetails(details serviceorder.Details) error {
	var errList []error
	if strings.TrimSpace(details.ClientName) == "" {
		errList = append(errList, ErrClientNameIsRequired)
	}
	if strings.TrimSpace(details.Address) == "" {
		errList = append(errList, ErrAddressIsRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.details = details
	return nil
}

func (c *CreateServiceOrderCommand) setTechnicianID(technicianID *kernel.UUID) error {
	if technicianID == nil {
		return nil
	}
	if err := technicianID.Validate(); err != nil {
		return err
	}

	id := *technicianID
	c.technicianID = &id
	return nil
}
