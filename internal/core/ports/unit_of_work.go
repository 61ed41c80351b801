package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Commit writes the domain events of every aggregate touched through its
// repositories to the outbox in the same transaction, then runs the
// after-commit hooks.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	ServiceOrderRepository() ServiceOrderRepository
	TechnicianRepository() TechnicianRepository
	HistoryRepository() HistoryRepository
	OutboxRepository() OutboxRepository
}
