// Package postgres implements the unit of work over GORM.
//
// A unit of work owns one database transaction. Repositories obtained from it
// run inside that transaction and report every aggregate they write through
// TrackAggregate. Commit then:
//
//  1. pulls the pending domain events of the tracked aggregates,
//  2. appends them to the outbox in the same transaction,
//  3. commits,
//  4. runs the after-commit hooks with the committed events.
//
// A failed step rolls the transaction back and nothing reaches the hooks.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ServiceOrderRepository().Update(ctx, order); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each request needs its own instance; a GormUnitOfWork is not safe for
// concurrent use.
package postgres

import (
	"context"

	"fieldservice/internal/adapters/out/postgres/historyrepo"
	"fieldservice/internal/adapters/out/postgres/outboxrepo"
	"fieldservice/internal/adapters/out/postgres/serviceorderrepo"
	"fieldservice/internal/adapters/out/postgres/storage"
	"fieldservice/internal/adapters/out/postgres/technicianrepo"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"

	"gorm.io/gorm"
)

// AfterCommitHook observes the events of a committed transaction. Hooks run
// after the data is durable, so they cannot fail the operation.
type AfterCommitHook func(ctx context.Context, events []kernel.DomainEvent)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates a fresh GormUnitOfWork per business
// operation.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	hooks []AfterCommitHook
}

func NewGormUnitOfWorkFactory(db *gorm.DB, hooks ...AfterCommitHook) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, hooks: hooks}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create with the concrete type.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		hooks:             f.hooks,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction and the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	hooks             []AfterCommitHook
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. A second call on an open unit is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return storage.Wrap("begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit flushes the domain events to the outbox and commits.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	events := uow.pullEvents()
	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, events); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return storage.Wrap("commit transaction", err)
	}

	for _, hook := range uow.hooks {
		hook(ctx, events)
	}
	return nil
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// when nothing is open, which is the normal case for a deferred call after a
// successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ServiceOrderRepository() ports.ServiceOrderRepository {
	return serviceorderrepo.NewGormServiceOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TechnicianRepository() ports.TechnicianRepository {
	return technicianrepo.NewGormTechnicianRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written in this unit. Repositories
// call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// pullEvents drains each tracked aggregate once, in tracking order.
func (uow *GormUnitOfWork) pullEvents() []kernel.DomainEvent {
	seen := make(map[any]struct{}, len(uow.trackedAggregates))
	var events []kernel.DomainEvent
	for _, tracked := range uow.trackedAggregates {
		if _, ok := seen[tracked.Aggregate]; ok {
			continue
		}
		seen[tracked.Aggregate] = struct{}{}

		if source, ok := tracked.Aggregate.(kernel.EventSource); ok {
			events = append(events, source.PullEvents()...)
		}
	}
	return events
}
