package ports

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be published.
type OutboxMessage struct {
	ID          int64
	EventName   string
	AggregateID string
	Payload     []byte
	CreatedAt   time.Time
	Attempts    int
}

// OutboxRepository stores domain events in the transaction that produced them
// and hands them to the relay.
type OutboxRepository interface {
	// Append serializes events into the outbox.
	Append(ctx context.Context, events []kernel.DomainEvent) error

	// ClaimBatch locks up to limit unpublished messages, oldest first,
	// skipping rows locked by another relay.
	ClaimBatch(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the messages as published.
	MarkPublished(ctx context.Context, ids []int64, at time.Time) error

	// MarkFailed increments the attempt counter and keeps the last error.
	MarkFailed(ctx context.Context, id int64, cause error) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}

// RouteCache stores serialized technician routes. Implementations must treat
// a miss and a disabled cache the same way.
//
// Every Invalidate bumps the technician's generation. Store only writes when
// the generation still equals the one read before the route was loaded from
// the database, so a read racing a commit cannot cache the older route.
type RouteCache interface {
	Load(ctx context.Context, technicianID kernel.UUID) ([]byte, bool, error)
	Generation(ctx context.Context, technicianID kernel.UUID) (int64, error)
	Store(ctx context.Context, technicianID kernel.UUID, generation int64, payload []byte) error
	Invalidate(ctx context.Context, technicianIDs ...kernel.UUID) error
}
