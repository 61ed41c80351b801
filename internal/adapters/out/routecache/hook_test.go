package routecache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldservice/internal/adapters/out/routecache"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRouteCache struct {
	mock.Mock
}

func (m *MockRouteCache) Load(ctx context.Context, id kernel.UUID) ([]byte, bool, error) {
	args := m.Called(ctx, id)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Bool(1), args.Error(2)
}

func (m *MockRouteCache) Generation(ctx context.Context, id kernel.UUID) (int64, error) {
	args := m.Called(ctx, id)
	generation, _ := args.Get(0).(int64)
	return generation, args.Error(1)
}

func (m *MockRouteCache) Store(ctx context.Context, id kernel.UUID, generation int64, payload []byte) error {
	return m.Called(ctx, id, generation, payload).Error(0)
}

func (m *MockRouteCache) Invalidate(ctx context.Context, ids ...kernel.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

var at = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func transferEvents(t *testing.T, from, to kernel.UUID) []kernel.DomainEvent {
	t.Helper()
	order, err := serviceorder.NewServiceOrder(kernel.NewUUID(), serviceorder.Details{
		ClientName: "ACME",
		Address:    "Rua das Flores, 100",
	}, &from, 0, at)
	require.NoError(t, err)
	_, err = order.TransferTo(to, 0, at)
	require.NoError(t, err)
	return order.PullEvents()
}

func TestAffectedTechnicians(t *testing.T) {
	from, to := kernel.NewUUID(), kernel.NewUUID()

	ids := routecache.AffectedTechnicians(transferEvents(t, from, to))

	assert.Equal(t, []kernel.UUID{from, to}, ids)
}

func TestInvalidationHook(t *testing.T) {
	t.Run("invalidates_every_affected_queue", func(t *testing.T) {
		from, to := kernel.NewUUID(), kernel.NewUUID()
		cache := new(MockRouteCache)
		cache.On("Invalidate", mock.Anything, []kernel.UUID{from, to}).Return(nil).Once()

		routecache.InvalidationHook(cache, zap.NewNop())(t.Context(), transferEvents(t, from, to))

		cache.AssertExpectations(t)
	})

	t.Run("skips_when_nothing_is_affected", func(t *testing.T) {
		cache := new(MockRouteCache)

		routecache.InvalidationHook(cache, zap.NewNop())(t.Context(), nil)

		cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})

	t.Run("failures_are_swallowed", func(t *testing.T) {
		from, to := kernel.NewUUID(), kernel.NewUUID()
		cache := new(MockRouteCache)
		cache.On("Invalidate", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

		assert.NotPanics(t, func() {
			routecache.InvalidationHook(cache, zap.NewNop())(t.Context(), transferEvents(t, from, to))
		})
		cache.AssertExpectations(t)
	})
}

func TestNoopRouteCache(t *testing.T) {
	var cache routecache.NoopRouteCache
	id := kernel.NewUUID()

	generation, err := cache.Generation(t.Context(), id)
	require.NoError(t, err)
	require.NoError(t, cache.Store(t.Context(), id, generation, []byte("[]")))
	_, ok, err := cache.Load(t.Context(), id)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, cache.Invalidate(t.Context(), id))
}
