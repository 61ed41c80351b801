package serviceorder

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
)

const (
	EventCreated       = "service_order.created"
	EventStatusChanged = "service_order.status_changed"
	EventTransferred   = "service_order.transferred"
	EventRepositioned  = "service_order.repositioned"
	EventDeleted       = "service_order.deleted"
)

// Event is the domain event recorded by ServiceOrder mutations.
// It implements kernel.DomainEvent.
type Event struct {
	name                 string
	orderID              kernel.UUID
	status               Status
	previousStatus       Status
	technicianID         *kernel.UUID
	previousTechnicianID *kernel.UUID
	position             int
	occurredAt           time.Time
}

// EventPayload is the published JSON body of an Event.
type EventPayload struct {
	Event                string    `json:"event"`
	OrderID              string    `json:"orderId"`
	Status               string    `json:"status"`
	PreviousStatus       string    `json:"previousStatus,omitempty"`
	TechnicianID         string    `json:"technicianId,omitempty"`
	PreviousTechnicianID string    `json:"previousTechnicianId,omitempty"`
	Position             int       `json:"position"`
	OccurredAt           time.Time `json:"occurredAt"`
}

func (e Event) EventName() string {
	return e.name
}

func (e Event) AggregateID() kernel.UUID {
	return e.orderID
}

func (e Event) OccurredAt() time.Time {
	return e.occurredAt
}

// AffectedQueues returns the current and, for transfers, the previous technician.
func (e Event) AffectedQueues() []kernel.UUID {
	queues := make([]kernel.UUID, 0, 2)
	if e.technicianID != nil {
		queues = append(queues, *e.technicianID)
	}
	if e.previousTechnicianID != nil && (e.technicianID == nil || !e.previousTechnicianID.IsEqual(*e.technicianID)) {
		queues = append(queues, *e.previousTechnicianID)
	}
	return queues
}

func (e Event) Payload() any {
	p := EventPayload{
		Event:      e.name,
		OrderID:    e.orderID.String(),
		Status:     e.status.String(),
		Position:   e.position,
		OccurredAt: e.occurredAt,
	}
	if e.previousStatus != Unknown {
		p.PreviousStatus = e.previousStatus.String()
	}
	if e.technicianID != nil {
		p.TechnicianID = e.technicianID.String()
	}
	if e.previousTechnicianID != nil {
		p.PreviousTechnicianID = e.previousTechnicianID.String()
	}
	return p
}
