package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/adapters/out/postgres/pgtest"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type recordingHook struct {
	mu     sync.Mutex
	events []kernel.DomainEvent
}

func (h *recordingHook) hook(_ context.Context, events []kernel.DomainEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, events...)
}

func (h *recordingHook) names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.events))
	for _, e := range h.events {
		names = append(names, e.EventName())
	}
	return names
}

// UnitOfWorkIntegrationTestSuite runs the unit of work and its repositories
// against a migrated PostgreSQL container.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	hook     *recordingHook
	factory  *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.hook = &recordingHook{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, suite.hook.hook)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.ServiceOrderRepository())
	suite.NotNil(uow1.TechnicianRepository())
	suite.NotNil(uow1.HistoryRepository())
	suite.NotNil(uow1.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesOutboxAndRunsHooks() {
	ctx := context.Background()
	tech := suite.newTechnician("ana@example.com")
	techID := tech.ID()
	order, err := serviceorder.NewServiceOrder(kernel.NewUUID(), serviceorder.Details{
		ClientName: "ACME",
		Address:    "Rua das Flores, 100",
	}, &techID, 0, baseTime)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TechnicianRepository().Add(ctx, tech))
	suite.Require().NoError(uow.ServiceOrderRepository().Add(ctx, order))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal([]string{technician.EventCreated, serviceorder.EventCreated}, suite.hook.names())
	suite.Equal(int64(2), suite.outboxCount())

	var aggregateIDs []string
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT aggregate_id FROM outbox_messages ORDER BY id").Scan(&aggregateIDs).Error)
	suite.Equal([]string{techID.String(), order.ID().String()}, aggregateIDs)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_LeavesNoOutboxRows() {
	ctx := context.Background()
	tech := suite.newTechnician("bia@example.com")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TechnicianRepository().Add(ctx, tech))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.outboxCount())
	suite.Empty(suite.hook.names())

	_, err := suite.factory.Create().TechnicianRepository().Get(ctx, tech.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_SameAggregateTrackedTwiceEmitsOnce() {
	ctx := context.Background()
	tech := suite.newTechnician("caio@example.com")
	suite.commitTechnician(tech)
	techID := tech.ID()

	order, err := serviceorder.NewServiceOrder(kernel.NewUUID(), serviceorder.Details{
		ClientName: "ACME",
		Address:    "Av. Paulista, 1",
	}, &techID, 0, baseTime)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	repo := uow.ServiceOrderRepository()
	suite.Require().NoError(repo.Add(ctx, order))
	suite.Require().NoError(order.MoveTo(3, baseTime))
	suite.Require().NoError(repo.Update(ctx, order))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(
		[]string{technician.EventCreated, serviceorder.EventCreated, serviceorder.EventRepositioned},
		suite.hook.names(),
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeferredUniquePosition_AllowsSwapInsideTransaction() {
	ctx := context.Background()
	tech := suite.newTechnician("duda@example.com")
	suite.commitTechnician(tech)
	techID := tech.ID()

	a := suite.commitOrder(&techID, 0)
	b := suite.commitOrder(&techID, 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	repo := uow.ServiceOrderRepository()
	suite.Require().NoError(a.MoveTo(1, baseTime))
	suite.Require().NoError(repo.Update(ctx, a))
	suite.Require().NoError(b.MoveTo(0, baseTime))
	suite.Require().NoError(repo.Update(ctx, b))
	suite.Require().NoError(uow.Commit(ctx))

	queue, err := suite.factory.Create().ServiceOrderRepository().ListByTechnicians(ctx, []kernel.UUID{techID})
	suite.Require().NoError(err)
	suite.Require().Len(queue, 2)
	suite.True(queue[0].IsEqual(b))
	suite.True(queue[1].IsEqual(a))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDuplicatePositionFailsAtCommit() {
	ctx := context.Background()
	tech := suite.newTechnician("edu@example.com")
	suite.commitTechnician(tech)
	techID := tech.ID()

	a := suite.commitOrder(&techID, 0)
	suite.commitOrder(&techID, 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(a.MoveTo(1, baseTime))
	suite.Require().NoError(uow.ServiceOrderRepository().Update(ctx, a))
	err := uow.Commit(ctx)

	suite.Require().ErrorIs(err, errs.ErrConflictState)
	suite.Equal(int64(3), suite.outboxCount(), "only the creation events are stored")
}

func (suite *UnitOfWorkIntegrationTestSuite) newTechnician(email string) *technician.Technician {
	tech, err := technician.NewTechnician(kernel.NewUUID(), "Tech "+email, email, "s3cret", baseTime)
	suite.Require().NoError(err)
	return tech
}

func (suite *UnitOfWorkIntegrationTestSuite) commitTechnician(tech *technician.Technician) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TechnicianRepository().Add(ctx, tech))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) commitOrder(techID *kernel.UUID, position int) *serviceorder.ServiceOrder {
	ctx := context.Background()
	order, err := serviceorder.NewServiceOrder(kernel.NewUUID(), serviceorder.Details{
		ClientName: "Client",
		Address:    "Somewhere 1",
	}, techID, position, baseTime)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ServiceOrderRepository().Add(ctx, order))
	suite.Require().NoError(uow.Commit(ctx))
	return order
}

func (suite *UnitOfWorkIntegrationTestSuite) outboxCount() int64 {
	var count int64
	suite.Require().NoError(suite.database.DB.Raw("SELECT COUNT(*) FROM outbox_messages").Scan(&count).Error)
	return count
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
