package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/technician"
)

// TechnicianRepository defines the persistence contract for technicians.
//
// The technician row doubles as the lock guarding its route: any write that
// computes a position in a technician's queue first calls GetForUpdate.
type TechnicianRepository interface {
	// Add persists a new technician. A duplicate email fails with a
	// ConflictStateError.
	Add(ctx context.Context, aggregate *technician.Technician) error

	// Get returns the technician or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*technician.Technician, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*technician.Technician, error)

	// ExistsByEmail reports whether the normalized email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Delete removes the technician, its orders and their history.
	Delete(ctx context.Context, aggregate *technician.Technician) error
}
