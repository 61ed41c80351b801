package commands

import (
	"errors"
	"strings"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/pkg/guard"
)

var ErrCreateTechnicianCommandIsNotConstructed = errors.New(
	"CreateTechnicianCommand must be created via NewCreateTechnicianCommand constructor",
)

// CreateTechnicianCommand registers a technician. The password is hashed by
// the handler and never stored in clear.
type CreateTechnicianCommand struct { //nolint:recvcheck //using for validation
	technicianID kernel.UUID
	name         string
	email        string
	password     string

	guard guard.ConstructorGuard
}

func NewCreateTechnicianCommand(
	technicianID kernel.UUID,
	name, email, password string,
) (CreateTechnicianCommand, error) {
	cmd := CreateTechnicianCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTechnicianID(technicianID),
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return CreateTechnicianCommand{}, err
	}

	return cmd, nil
}

func (c CreateTechnicianCommand) Validate() error {
	return c.guard.Validate(ErrCreateTechnicianCommandIsNotConstructed)
}

func (c CreateTechnicianCommand) TechnicianID() kernel.UUID {
	return c.technicianID
}

func (c CreateTechnicianCommand) Name() string {
	return c.name
}

func (c CreateTechnicianCommand) Email() string {
	return c.email
}

func (c CreateTechnicianCommand) Password() string {
	return c.password
}

func (c *CreateTechnicianCommand) setTechnicianID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.technicianID = id
	return nil
}

func (c *CreateTechnicianCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return technician.ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateTechnicianCommand) setEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return technician.ErrEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *CreateTechnicianCommand) setPassword(password string) error {
	if password == "" {
		return technician.ErrPasswordIsRequired
	}

	c.password = password
	return nil
}
