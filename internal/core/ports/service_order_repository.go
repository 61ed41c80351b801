// Package ports defines the persistence and infrastructure contracts of the
// field-service core. Adapters implement them; command and query handlers
// depend on them.
package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
)

// ServiceOrderRepository defines the persistence contract for service order
// aggregates.
type ServiceOrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *serviceorder.ServiceOrder) error

	// Update writes every field of an existing order, including cleared ones.
	Update(ctx context.Context, aggregate *serviceorder.ServiceOrder) error

	// Get returns the order or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*serviceorder.ServiceOrder, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*serviceorder.ServiceOrder, error)

	// GetMany returns the orders that exist among ids, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*serviceorder.ServiceOrder, error)

	// ListByTechnicians returns every order of the given technicians ordered
	// by technician and position.
	ListByTechnicians(ctx context.Context, technicianIDs []kernel.UUID) ([]*serviceorder.ServiceOrder, error)

	// MaxPosition returns the largest position in a queue, or nil when the
	// queue is empty. A nil technicianID addresses the unassigned pool.
	MaxPosition(ctx context.Context, technicianID *kernel.UUID) (*int, error)

	// Delete removes the order together with its history.
	Delete(ctx context.Context, aggregate *serviceorder.ServiceOrder) error
}
