package technician

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors for technician operations.
var (
	ErrNameIsRequired     = errs.NewValueIsRequiredError("name")
	ErrEmailIsRequired    = errs.NewValueIsRequiredError("email")
	ErrPasswordIsRequired = errs.NewValueIsRequiredError("password")
	// ErrTechnicianIsNotConstructed is returned when using a zero-value Technician.
	ErrTechnicianIsNotConstructed = errors.New("Technician must be created via NewTechnician constructor")
)

// Technician is a field worker that owns an ordered route of service orders.
// The plain password never leaves NewTechnician; only its bcrypt hash is kept.
type Technician struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	createdAt    time.Time
	events       []kernel.DomainEvent
	guard        guard.ConstructorGuard
}

// NewTechnician validates the input and hashes password with bcrypt.
func NewTechnician(id kernel.UUID, name, email, password string, createdAt time.Time) (*Technician, error) {
	t := &Technician{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setEmail(email),
		t.setPassword(password),
		t.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	t.record(EventCreated, createdAt)
	return t, nil
}

// RestoreTechnician rebuilds a technician from storage. passwordHash is taken
// as is.
func RestoreTechnician(id kernel.UUID, name, email, passwordHash string, createdAt time.Time) (*Technician, error) {
	t := &Technician{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setEmail(email),
		t.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrPasswordIsRequired
	}
	t.passwordHash = passwordHash

	return t, nil
}

func (t *Technician) Validate() error {
	if t == nil {
		return ErrTechnicianIsNotConstructed
	}
	return t.guard.Validate(ErrTechnicianIsNotConstructed)
}

func (t *Technician) ID() kernel.UUID {
	return t.id
}

func (t *Technician) Name() string {
	return t.name
}

// Email is the normalized (lower-case) address.
func (t *Technician) Email() string {
	return t.email
}

func (t *Technician) PasswordHash() string {
	return t.passwordHash
}

func (t *Technician) CreatedAt() time.Time {
	return t.createdAt
}

// CheckPassword reports whether password matches the stored hash.
func (t *Technician) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(t.passwordHash), []byte(password)) == nil
}

// MarkDeleted records the deletion event. The repository removes the
// technician together with its orders and their history.
func (t *Technician) MarkDeleted(now time.Time) {
	t.record(EventDeleted, now)
}

// PullEvents implements kernel.EventSource.
func (t *Technician) PullEvents() []kernel.DomainEvent {
	events := t.events
	t.events = nil
	return events
}

func (t *Technician) record(name string, at time.Time) {
	t.events = append(t.events, Event{
		name:         name,
		technicianID: t.id,
		fullName:     t.name,
		email:        t.email,
		occurredAt:   at,
	})
}

func (t *Technician) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Technician) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	t.name = name
	return nil
}

func (t *Technician) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailIsRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", email))
	}
	t.email = email
	return nil
}

func (t *Technician) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("password", err)
	}
	t.passwordHash = string(hash)
	return nil
}

func (t *Technician) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	t.createdAt = createdAt
	return nil
}
