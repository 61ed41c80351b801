package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrUpdateServiceOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateServiceOrderStatusCommand must be created via NewUpdateServiceOrderStatusCommand constructor",
	)
	ErrLocationIsIncomplete = errs.NewValueIsInvalidErrorWithCause(
		"location",
		errors.New("latitude and longitude must be given together"),
	)
)

// UpdateServiceOrderStatusCommand moves an order through its lifecycle.
// The optional location is captured on EN_ROUTE and EXECUTING; the optional
// justification is used by RESCHEDULED.
//
// Example:
//
//	lat, lng := -23.55, -46.63
//	cmd, err := NewUpdateServiceOrderStatusCommand(orderID, "EN_ROUTE", "", &lat, &lng)
type UpdateServiceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	status        serviceorder.Status
	justification string
	location      *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateServiceOrderStatusCommand parses the status name and the optional
// coordinates. An unknown status or out-of-range coordinate fails here,
// before any storage is touched.
func NewUpdateServiceOrderStatusCommand(
	orderID kernel.UUID,
	status string,
	justification string,
	latitude, longitude *float64,
) (UpdateServiceOrderStatusCommand, error) {
	cmd := UpdateServiceOrderStatusCommand{
		justification: justification,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setLocation(latitude, longitude),
	); err != nil {
		return UpdateServiceOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateServiceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateServiceOrderStatusCommandIsNotConstructed)
}

func (c UpdateServiceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateServiceOrderStatusCommand) Status() serviceorder.Status {
	return c.status
}

func (c UpdateServiceOrderStatusCommand) Justification() string {
	return c.justification
}

// Location is nil when no coordinates were supplied.
func (c UpdateServiceOrderStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *UpdateServiceOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateServiceOrderStatusCommand) setStatus(name string) error {
	status, err := serviceorder.ParseStatus(name)
	if err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *UpdateServiceOrderStatusCommand) setLocation(latitude, longitude *float64) error {
	if latitude == nil && longitude == nil {
		return nil
	}
	if latitude == nil || longitude == nil {
		return ErrLocationIsIncomplete
	}

	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return err
	}

	c.location = &point
	return nil
}
