package serviceorder

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
)

// ErrServiceOrderIsNotConstructed is returned when a ServiceOrder was not built
// by NewServiceOrder or RestoreServiceOrder.
var ErrServiceOrderIsNotConstructed = errors.New("ServiceOrder must be created via NewServiceOrder constructor")

// RescheduleNotesPrefix prefixes the order notes written when an order is
// rescheduled with a justification.
const RescheduleNotesPrefix = "Rescheduled: "

// Details holds the descriptive fields of a service order. They are copied
// verbatim from the request and never interpreted by the lifecycle.
type Details struct {
	OrderNumber        int
	ClientName         string
	Address            string
	ProblemDescription string
	Priority           string
	Period             string
	Notes              string
}

// ServiceOrder is the aggregate root for a field-service job. It owns its
// status, its position in the technician's route queue and the derived
// execution fields. Every state change returns the history entry that must be
// committed with it and records a domain event.
//
// Invariants:
//   - position is never negative
//   - status is one of PENDING, EN_ROUTE, EXECUTING, COMPLETED, RESCHEDULED
//   - executionDuration is only set when an execution is stopped
type ServiceOrder struct {
	id                  kernel.UUID
	details             Details
	status              Status
	position            int
	technicianID        *kernel.UUID
	createdAt           time.Time
	executionStartTime  *time.Time
	executionDuration   *int
	startTravelLocation *kernel.GeoPoint
	executionLocation   *kernel.GeoPoint

	events        []kernel.DomainEvent
	isConstructed bool
}

// NewServiceOrder creates a PENDING order at the given queue position.
// technicianID may be nil for an order that has not been assigned yet; the
// position is then meaningless until the first transfer.
//
// Example:
//
//	order, err := serviceorder.NewServiceOrder(kernel.NewUUID(), serviceorder.Details{
//	    OrderNumber: 1042,
//	    ClientName:  "ACME",
//	    Address:     "Rua das Flores, 100",
//	}, &technicianID, nextPosition, clock.Now())
func NewServiceOrder(
	id kernel.UUID,
	details Details,
	technicianID *kernel.UUID,
	position int,
	createdAt time.Time,
) (*ServiceOrder, error) {
	o := &ServiceOrder{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDetails(details),
		o.setTechnician(technicianID),
		o.setPosition(position),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.record(EventCreated, Unknown, nil, createdAt)
	return o, nil
}

// RestoreParams carries the persisted state of a ServiceOrder.
type RestoreParams struct {
	ID                  kernel.UUID
	Details             Details
	Status              Status
	Position            int
	TechnicianID        *kernel.UUID
	CreatedAt           time.Time
	ExecutionStartTime  *time.Time
	ExecutionDuration   *int
	StartTravelLocation *kernel.GeoPoint
	ExecutionLocation   *kernel.GeoPoint
}

// RestoreServiceOrder rebuilds an order loaded from storage without
// recording events.
func RestoreServiceOrder(p RestoreParams) (*ServiceOrder, error) {
	o := &ServiceOrder{
		executionStartTime:  p.ExecutionStartTime,
		executionDuration:   p.ExecutionDuration,
		startTravelLocation: p.StartTravelLocation,
		executionLocation:   p.ExecutionLocation,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setDetails(p.Details),
		o.setStatus(p.Status),
		o.setTechnician(p.TechnicianID),
		o.setPosition(p.Position),
		o.setCreatedAt(p.CreatedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *ServiceOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrServiceOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *ServiceOrder) IsEqual(other *ServiceOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *ServiceOrder) ID() kernel.UUID {
	return o.id
}

func (o *ServiceOrder) Details() Details {
	return o.details
}

func (o *ServiceOrder) Status() Status {
	return o.status
}

// Position is the zero-based place of the order in its technician's queue.
func (o *ServiceOrder) Position() int {
	return o.position
}

// TechnicianID returns nil while the order is unassigned.
func (o *ServiceOrder) TechnicianID() *kernel.UUID {
	return o.technicianID
}

func (o *ServiceOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *ServiceOrder) ExecutionStartTime() *time.Time {
	return o.executionStartTime
}

// ExecutionDuration is in whole minutes.
func (o *ServiceOrder) ExecutionDuration() *int {
	return o.executionDuration
}

func (o *ServiceOrder) StartTravelLocation() *kernel.GeoPoint {
	return o.startTravelLocation
}

func (o *ServiceOrder) ExecutionLocation() *kernel.GeoPoint {
	return o.executionLocation
}

// ApplyStatus moves the order to next and returns the history entry for the
// transition.
//
// Side effects, in order:
//   - EN_ROUTE with a location captures the start-of-travel coordinates
//   - EXECUTING with a location captures the execution coordinates
//   - EXECUTING always stamps executionStartTime with now
//   - leaving EXECUTING for COMPLETED or RESCHEDULED computes
//     executionDuration = round((now - executionStartTime) / 1m) when a
//     start time is present
//   - RESCHEDULED with a justification overwrites notes with
//     "Rescheduled: <justification>"; the history entry keeps the raw text
//
// Nothing is mutated when validation fails.
func (o *ServiceOrder) ApplyStatus(
	next Status,
	justification string,
	location *kernel.GeoPoint,
	now time.Time,
) (*HistoryEntry, error) {
	if err := o.status.ValidateTransition(next); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	justification = strings.TrimSpace(justification)
	var historyNotes string
	if next == Rescheduled {
		historyNotes = justification
	}

	entry, err := NewHistoryEntry(o.id, next, historyNotes, now)
	if err != nil {
		return nil, err
	}

	if location != nil {
		captured := *location
		switch next { //nolint:exhaustive // only two statuses capture coordinates
		case EnRoute:
			o.startTravelLocation = &captured
		case Executing:
			o.executionLocation = &captured
		}
	}

	if next == Executing {
		started := now
		o.executionStartTime = &started
	}

	if o.status.StopsExecution(next) && o.executionStartTime != nil {
		minutes := int(math.Round(now.Sub(*o.executionStartTime).Minutes()))
		o.executionDuration = &minutes
	}

	if next == Rescheduled && justification != "" {
		o.details.Notes = RescheduleNotesPrefix + justification
	}

	previous := o.status
	o.status = next
	o.record(EventStatusChanged, previous, nil, now)

	return entry, nil
}

// TransferTo moves the order to the tail position of another technician's
// queue. The status is reset to PENDING and the execution state of the
// abandoned run (start time, duration, travel and execution coordinates) is
// cleared. The returned history entry records TRANSFERRED.
func (o *ServiceOrder) TransferTo(technicianID kernel.UUID, position int, now time.Time) (*HistoryEntry, error) {
	if err := technicianID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("technicianId", err)
	}
	if position < 0 {
		return nil, errs.NewValueIsOutOfRangeError("position", position, 0, math.MaxInt)
	}

	entry, err := NewHistoryEntry(o.id, Transferred, "", now)
	if err != nil {
		return nil, err
	}

	previousTechnician := o.technicianID
	previousStatus := o.status

	assigned := technicianID
	o.technicianID = &assigned
	o.position = position
	o.status = Pending
	o.executionStartTime = nil
	o.executionDuration = nil
	o.startTravelLocation = nil
	o.executionLocation = nil
	o.record(EventTransferred, previousStatus, previousTechnician, now)

	return entry, nil
}

// MoveTo sets the queue position. It is a no-op when the position is unchanged.
func (o *ServiceOrder) MoveTo(position int, now time.Time) error {
	if position == o.position {
		return nil
	}
	if err := o.setPosition(position); err != nil {
		return err
	}
	o.record(EventRepositioned, Unknown, nil, now)
	return nil
}

// MarkDeleted records the deletion event. The repository removes the order
// and its history.
func (o *ServiceOrder) MarkDeleted(now time.Time) {
	o.record(EventDeleted, Unknown, nil, now)
}

// PullEvents implements kernel.EventSource.
func (o *ServiceOrder) PullEvents() []kernel.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *ServiceOrder) record(name string, previousStatus Status, previousTechnician *kernel.UUID, at time.Time) {
	o.events = append(o.events, Event{
		name:                 name,
		orderID:              o.id,
		status:               o.status,
		previousStatus:       previousStatus,
		technicianID:         o.technicianID,
		previousTechnicianID: previousTechnician,
		position:             o.position,
		occurredAt:           at,
	})
}

func (o *ServiceOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ServiceOrder) setDetails(d Details) error {
	d.ClientName = strings.TrimSpace(d.ClientName)
	d.Address = strings.TrimSpace(d.Address)

	var errList []error
	if d.ClientName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("clientName"))
	}
	if d.Address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address"))
	}
	if d.OrderNumber < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"orderNumber", fmt.Errorf("%d is negative", d.OrderNumber)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.details = d
	return nil
}

func (o *ServiceOrder) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == Transferred {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", errors.New("TRANSFERRED is never stored on an order"))
	}
	o.status = s
	return nil
}

func (o *ServiceOrder) setTechnician(technicianID *kernel.UUID) error {
	if technicianID == nil {
		o.technicianID = nil
		return nil
	}
	if err := technicianID.Validate(); err != nil {
		return err
	}
	id := *technicianID
	o.technicianID = &id
	return nil
}

func (o *ServiceOrder) setPosition(position int) error {
	if position < 0 {
		return errs.NewValueIsOutOfRangeError("position", position, 0, math.MaxInt)
	}
	o.position = position
	return nil
}

func (o *ServiceOrder) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
