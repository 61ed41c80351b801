package commands_test

import (
	"context"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newClock() *kernel.FixedClock {
	return &kernel.FixedClock{At: fixedNow}
}

type MockServiceOrderRepository struct{ mock.Mock }

func (m *MockServiceOrderRepository) Add(ctx context.Context, o *serviceorder.ServiceOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockServiceOrderRepository) Update(ctx context.Context, o *serviceorder.ServiceOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockServiceOrderRepository) Get(ctx context.Context, id kernel.UUID) (*serviceorder.ServiceOrder, error) {
	args := m.Called(ctx, id)
	return orderArg(args, 0), args.Error(1)
}

func (m *MockServiceOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*serviceorder.ServiceOrder, error) {
	args := m.Called(ctx, id)
	return orderArg(args, 0), args.Error(1)
}

func (m *MockServiceOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*serviceorder.ServiceOrder, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]*serviceorder.ServiceOrder)
	return orders, args.Error(1)
}

func (m *MockServiceOrderRepository) ListByTechnicians(
	ctx context.Context,
	technicianIDs []kernel.UUID,
) ([]*serviceorder.ServiceOrder, error) {
	args := m.Called(ctx, technicianIDs)
	orders, _ := args.Get(0).([]*serviceorder.ServiceOrder)
	return orders, args.Error(1)
}

func (m *MockServiceOrderRepository) MaxPosition(ctx context.Context, technicianID *kernel.UUID) (*int, error) {
	args := m.Called(ctx, technicianID)
	position, _ := args.Get(0).(*int)
	return position, args.Error(1)
}

func (m *MockServiceOrderRepository) Delete(ctx context.Context, o *serviceorder.ServiceOrder) error {
	return m.Called(ctx, o).Error(0)
}

func orderArg(args mock.Arguments, i int) *serviceorder.ServiceOrder {
	o, _ := args.Get(i).(*serviceorder.ServiceOrder)
	return o
}

type MockTechnicianRepository struct{ mock.Mock }

func (m *MockTechnicianRepository) Add(ctx context.Context, t *technician.Technician) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTechnicianRepository) Get(ctx context.Context, id kernel.UUID) (*technician.Technician, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*technician.Technician)
	return t, args.Error(1)
}

func (m *MockTechnicianRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*technician.Technician, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*technician.Technician)
	return t, args.Error(1)
}

func (m *MockTechnicianRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockTechnicianRepository) Delete(ctx context.Context, t *technician.Technician) error {
	return m.Called(ctx, t).Error(0)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Record(ctx context.Context, entry *serviceorder.HistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*serviceorder.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	entries, _ := args.Get(0).([]*serviceorder.HistoryEntry)
	return entries, args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) ServiceOrderRepository() ports.ServiceOrderRepository {
	return m.Called().Get(0).(ports.ServiceOrderRepository)
}

func (m *MockUoW) TechnicianRepository() ports.TechnicianRepository {
	return m.Called().Get(0).(ports.TechnicianRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	return m.Called().Get(0).(ports.HistoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockRouteUoWFactory struct{ mock.Mock }

func (m *MockRouteUoWFactory) Create() commands.RouteUoW {
	return m.Called().Get(0).(commands.RouteUoW)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return m.Called().Get(0).(commands.LifecycleUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockTechnicianUoWFactory struct{ mock.Mock }

func (m *MockTechnicianUoWFactory) Create() commands.TechnicianUoW {
	return m.Called().Get(0).(commands.TechnicianUoW)
}

func existingOrder(technicianID *kernel.UUID, position int) *serviceorder.ServiceOrder {
	o, err := serviceorder.NewServiceOrder(kernel.NewUUID(), serviceorder.Details{
		OrderNumber: 7,
		ClientName:  "ACME",
		Address:     "Rua das Flores, 100",
		Notes:       "gate code 42",
	}, technicianID, position, fixedNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	o.PullEvents()
	return o
}

func existingTechnician() *technician.Technician {
	t, err := technician.RestoreTechnician(kernel.NewUUID(), "Ana", "ana@example.com", "$2a$10$hash", fixedNow)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int {
	return &v
}
