package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate while it is mutated. The unit
// of work collects events from every tracked aggregate and writes them to the
// outbox inside the same transaction as the change itself.
type DomainEvent interface {
	// EventName is the routing name, e.g. "service_order.status_changed".
	EventName() string

	// AggregateID identifies the aggregate the event belongs to and is used as
	// the message key so that events of one aggregate stay ordered.
	AggregateID() UUID

	// AffectedQueues lists the technicians whose route changed.
	AffectedQueues() []UUID

	// OccurredAt is the domain time of the change.
	OccurredAt() time.Time

	// Payload is the JSON-serializable body published to subscribers.
	Payload() any
}

// EventSource is implemented by aggregates that record domain events.
// PullEvents returns the pending events and clears them.
type EventSource interface {
	PullEvents() []DomainEvent
}
