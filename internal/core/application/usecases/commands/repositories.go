// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fieldservice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ServiceOrderRepoFactory interface {
		ServiceOrderRepository() ports.ServiceOrderRepository
	}

	TechnicianRepoFactory interface {
		TechnicianRepository() ports.TechnicianRepository
	}

	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OutboxUoW holds the row locks of a claimed outbox batch until the
	// relay commits its published or failed marks.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// TechnicianUoW manages transactions for technician-only operations.
	TechnicianUoW interface {
		TxManager
		TechnicianRepoFactory
	}

	TechnicianUoWFactory interface {
		Create() TechnicianUoW
	}

	// OrderUoW manages transactions that touch a single order and nothing else.
	OrderUoW interface {
		TxManager
		ServiceOrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// RouteUoW manages transactions that write positions into a technician's
	// queue. The technician repository provides the row lock.
	RouteUoW interface {
		TxManager
		ServiceOrderRepoFactory
		TechnicianRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// LifecycleUoW manages status changes: the order and its ledger entry
	// commit together.
	LifecycleUoW interface {
		TxManager
		ServiceOrderRepoFactory
		HistoryRepoFactory
	}

	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// UoW spans orders, technicians and the ledger.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   technicianRepo := uow.TechnicianRepository()
	//   orderRepo := uow.ServiceOrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ServiceOrderRepoFactory
		TechnicianRepoFactory
		HistoryRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
