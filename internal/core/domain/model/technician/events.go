package technician

import (
	"time"

	"fieldservice/internal/core/domain/model/kernel"
)

const (
	EventCreated = "technician.created"
	EventDeleted = "technician.deleted"
)

// Event is recorded when a technician is created or deleted.
type Event struct {
	name         string
	technicianID kernel.UUID
	fullName     string
	email        string
	occurredAt   time.Time
}

// EventPayload is the published JSON body of an Event. The password hash is
// never published.
type EventPayload struct {
	Event        string    `json:"event"`
	TechnicianID string    `json:"technicianId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func (e Event) EventName() string {
	return e.name
}

func (e Event) AggregateID() kernel.UUID {
	return e.technicianID
}

// AffectedQueues is the technician's own route.
func (e Event) AffectedQueues() []kernel.UUID {
	return []kernel.UUID{e.technicianID}
}

func (e Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e Event) Payload() any {
	return EventPayload{
		Event:        e.name,
		TechnicianID: e.technicianID.String(),
		Name:         e.fullName,
		Email:        e.email,
		OccurredAt:   e.occurredAt,
	}
}
