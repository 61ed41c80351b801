package serviceorder_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func validDetails() serviceorder.Details {
	return serviceorder.Details{
		OrderNumber:        1042,
		ClientName:         "ACME",
		Address:            "Rua das Flores, 100",
		ProblemDescription: "Air conditioner leaking",
		Priority:           "HIGH",
		Period:             "MORNING",
		Notes:              "Ring twice",
	}
}

func newOrder(t *testing.T, position int) (*serviceorder.ServiceOrder, kernel.UUID) {
	t.Helper()
	technicianID := kernel.NewUUID()
	o, err := serviceorder.NewServiceOrder(kernel.NewUUID(), validDetails(), &technicianID, position, baseTime)
	require.NoError(t, err)
	o.PullEvents()
	return o, technicianID
}

func TestNewServiceOrder(t *testing.T) {
	t.Run("should create pending order with details", func(t *testing.T) {
		id := kernel.NewUUID()
		technicianID := kernel.NewUUID()

		o, err := serviceorder.NewServiceOrder(id, validDetails(), &technicianID, 3, baseTime)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, serviceorder.Pending, o.Status())
		assert.Equal(t, 3, o.Position())
		assert.True(t, o.TechnicianID().IsEqual(technicianID))
		assert.Equal(t, validDetails(), o.Details())
		assert.Equal(t, baseTime, o.CreatedAt())
		assert.Nil(t, o.ExecutionStartTime())
		assert.Nil(t, o.ExecutionDuration())
		assert.Nil(t, o.StartTravelLocation())
		assert.Nil(t, o.ExecutionLocation())
	})

	t.Run("should record created event", func(t *testing.T) {
		technicianID := kernel.NewUUID()
		o, err := serviceorder.NewServiceOrder(kernel.NewUUID(), validDetails(), &technicianID, 0, baseTime)
		require.NoError(t, err)

		events := o.PullEvents()

		require.Len(t, events, 1)
		assert.Equal(t, serviceorder.EventCreated, events[0].EventName())
		assert.True(t, events[0].AggregateID().IsEqual(o.ID()))
		require.Len(t, events[0].AffectedQueues(), 1)
		assert.True(t, events[0].AffectedQueues()[0].IsEqual(technicianID))
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should allow an unassigned order", func(t *testing.T) {
		o, err := serviceorder.NewServiceOrder(kernel.NewUUID(), validDetails(), nil, 0, baseTime)

		require.NoError(t, err)
		assert.Nil(t, o.TechnicianID())
		assert.Empty(t, o.PullEvents()[0].AffectedQueues())
	})

	t.Run("should not alias the technician pointer", func(t *testing.T) {
		technicianID := kernel.NewUUID()
		o, err := serviceorder.NewServiceOrder(kernel.NewUUID(), validDetails(), &technicianID, 0, baseTime)
		require.NoError(t, err)

		original := technicianID
		technicianID = kernel.NewUUID()

		assert.True(t, o.TechnicianID().IsEqual(original))
	})

	t.Run("should join every validation error", func(t *testing.T) {
		details := validDetails()
		details.ClientName = "  "
		details.Address = ""
		details.OrderNumber = -1

		o, err := serviceorder.NewServiceOrder(kernel.UUID{}, details, nil, -2, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "clientName")
		assert.Contains(t, err.Error(), "address")
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "position")
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestRestoreServiceOrder(t *testing.T) {
	t.Run("should restore execution fields without events", func(t *testing.T) {
		technicianID := kernel.NewUUID()
		started := baseTime.Add(time.Hour)
		duration := 42
		point, err := kernel.NewGeoPoint(-23.55, -46.63)
		require.NoError(t, err)

		o, err := serviceorder.RestoreServiceOrder(serviceorder.RestoreParams{
			ID:                 kernel.NewUUID(),
			Details:            validDetails(),
			Status:             serviceorder.Completed,
			Position:           5,
			TechnicianID:       &technicianID,
			CreatedAt:          baseTime,
			ExecutionStartTime: &started,
			ExecutionDuration:  &duration,
			ExecutionLocation:  &point,
		})

		require.NoError(t, err)
		assert.Equal(t, serviceorder.Completed, o.Status())
		assert.Equal(t, 5, o.Position())
		assert.Equal(t, started, *o.ExecutionStartTime())
		assert.Equal(t, 42, *o.ExecutionDuration())
		assert.InDelta(t, -23.55, o.ExecutionLocation().Latitude(), 1e-9)
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject a stored TRANSFERRED status", func(t *testing.T) {
		o, err := serviceorder.RestoreServiceOrder(serviceorder.RestoreParams{
			ID:        kernel.NewUUID(),
			Details:   validDetails(),
			Status:    serviceorder.Transferred,
			CreatedAt: baseTime,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})
}

func TestServiceOrder_Validate(t *testing.T) {
	var nilOrder *serviceorder.ServiceOrder
	assert.Equal(t, serviceorder.ErrServiceOrderIsNotConstructed, nilOrder.Validate())

	var zero serviceorder.ServiceOrder
	assert.Equal(t, serviceorder.ErrServiceOrderIsNotConstructed, zero.Validate())
}

func TestServiceOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	o1, _ := serviceorder.NewServiceOrder(id, validDetails(), nil, 0, baseTime)
	o2, _ := serviceorder.NewServiceOrder(id, validDetails(), nil, 7, baseTime)
	o3, _ := serviceorder.NewServiceOrder(kernel.NewUUID(), validDetails(), nil, 0, baseTime)

	assert.True(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(o3))
	assert.False(t, o1.IsEqual(nil))
}

func TestServiceOrder_ApplyStatus(t *testing.T) {
	t.Run("should capture travel location on EN_ROUTE", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		point, _ := kernel.NewGeoPoint(-23.5, -46.6)

		entry, err := o.ApplyStatus(serviceorder.EnRoute, "", &point, baseTime)

		require.NoError(t, err)
		assert.Equal(t, serviceorder.EnRoute, o.Status())
		require.NotNil(t, o.StartTravelLocation())
		equal, _ := o.StartTravelLocation().IsEqual(point)
		assert.True(t, equal)
		assert.Nil(t, o.ExecutionLocation())
		assert.Nil(t, o.ExecutionStartTime())
		assert.Equal(t, serviceorder.EnRoute, entry.Status())
		assert.True(t, entry.OrderID().IsEqual(o.ID()))
		assert.Equal(t, baseTime, entry.Timestamp())
		assert.Nil(t, entry.Notes())
	})

	t.Run("should stamp start time on EXECUTING without a location", func(t *testing.T) {
		o, _ := newOrder(t, 0)

		_, err := o.ApplyStatus(serviceorder.Executing, "", nil, baseTime)

		require.NoError(t, err)
		require.NotNil(t, o.ExecutionStartTime())
		assert.Equal(t, baseTime, *o.ExecutionStartTime())
		assert.Nil(t, o.ExecutionLocation())
	})

	t.Run("should capture execution location on EXECUTING", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		point, _ := kernel.NewGeoPoint(10, 20)

		_, err := o.ApplyStatus(serviceorder.Executing, "", &point, baseTime)

		require.NoError(t, err)
		require.NotNil(t, o.ExecutionLocation())
		assert.InDelta(t, 20.0, o.ExecutionLocation().Longitude(), 1e-9)
		assert.Nil(t, o.StartTravelLocation())
	})

	t.Run("should compute duration in minutes when completing", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		_, err := o.ApplyStatus(serviceorder.Executing, "", nil, baseTime)
		require.NoError(t, err)

		_, err = o.ApplyStatus(serviceorder.Completed, "", nil, baseTime.Add(5*time.Minute))

		require.NoError(t, err)
		require.NotNil(t, o.ExecutionDuration())
		assert.Equal(t, 5, *o.ExecutionDuration())
	})

	t.Run("should round duration to the nearest minute", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		_, _ = o.ApplyStatus(serviceorder.Executing, "", nil, baseTime)

		_, err := o.ApplyStatus(serviceorder.Completed, "", nil, baseTime.Add(2*time.Minute+31*time.Second))

		require.NoError(t, err)
		assert.Equal(t, 3, *o.ExecutionDuration())
	})

	t.Run("should not compute duration outside EXECUTING", func(t *testing.T) {
		o, _ := newOrder(t, 0)

		_, err := o.ApplyStatus(serviceorder.Completed, "", nil, baseTime.Add(time.Hour))

		require.NoError(t, err)
		assert.Nil(t, o.ExecutionDuration())
	})

	t.Run("should restart execution clock on re-entering EXECUTING", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		_, _ = o.ApplyStatus(serviceorder.Executing, "", nil, baseTime)
		_, _ = o.ApplyStatus(serviceorder.Pending, "", nil, baseTime.Add(10*time.Minute))
		_, _ = o.ApplyStatus(serviceorder.Executing, "", nil, baseTime.Add(20*time.Minute))

		_, err := o.ApplyStatus(serviceorder.Completed, "", nil, baseTime.Add(27*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, 7, *o.ExecutionDuration())
	})

	t.Run("should write rescheduled notes and keep raw justification in history", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		_, _ = o.ApplyStatus(serviceorder.Executing, "", nil, baseTime)

		entry, err := o.ApplyStatus(serviceorder.Rescheduled, "  client absent ", nil, baseTime.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, "Rescheduled: client absent", o.Details().Notes)
		require.NotNil(t, entry.Notes())
		assert.Equal(t, "client absent", *entry.Notes())
		assert.Equal(t, 1, *o.ExecutionDuration())
	})

	t.Run("should keep notes when rescheduled without justification", func(t *testing.T) {
		o, _ := newOrder(t, 0)

		entry, err := o.ApplyStatus(serviceorder.Rescheduled, "", nil, baseTime)

		require.NoError(t, err)
		assert.Equal(t, "Ring twice", o.Details().Notes)
		assert.Nil(t, entry.Notes())
	})

	t.Run("should ignore justification on other statuses", func(t *testing.T) {
		o, _ := newOrder(t, 0)

		entry, err := o.ApplyStatus(serviceorder.Completed, "done early", nil, baseTime)

		require.NoError(t, err)
		assert.Equal(t, "Ring twice", o.Details().Notes)
		assert.Nil(t, entry.Notes())
	})

	t.Run("should reject TRANSFERRED and leave the order untouched", func(t *testing.T) {
		o, _ := newOrder(t, 0)

		entry, err := o.ApplyStatus(serviceorder.Transferred, "", nil, baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, entry)
		assert.Equal(t, serviceorder.Pending, o.Status())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject an unconstructed location", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		var point kernel.GeoPoint

		_, err := o.ApplyStatus(serviceorder.EnRoute, "", &point, baseTime)

		require.Error(t, err)
		assert.Equal(t, serviceorder.Pending, o.Status())
		assert.Nil(t, o.StartTravelLocation())
	})

	t.Run("should record status changed event", func(t *testing.T) {
		o, technicianID := newOrder(t, 2)

		_, err := o.ApplyStatus(serviceorder.EnRoute, "", nil, baseTime)
		require.NoError(t, err)

		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, serviceorder.EventStatusChanged, events[0].EventName())
		payload, ok := events[0].Payload().(serviceorder.EventPayload)
		require.True(t, ok)
		assert.Equal(t, "EN_ROUTE", payload.Status)
		assert.Equal(t, "PENDING", payload.PreviousStatus)
		assert.Equal(t, technicianID.String(), payload.TechnicianID)
		assert.Equal(t, 2, payload.Position)
	})
}

func TestServiceOrder_TransferTo(t *testing.T) {
	t.Run("should reset to pending at the new tail", func(t *testing.T) {
		o, previous := newOrder(t, 0)
		_, _ = o.ApplyStatus(serviceorder.Executing, "", nil, baseTime)
		o.PullEvents()
		target := kernel.NewUUID()

		entry, err := o.TransferTo(target, 4, baseTime.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, serviceorder.Pending, o.Status())
		assert.True(t, o.TechnicianID().IsEqual(target))
		assert.Equal(t, 4, o.Position())
		assert.Equal(t, serviceorder.Transferred, entry.Status())
		assert.Equal(t, baseTime.Add(time.Minute), entry.Timestamp())

		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, serviceorder.EventTransferred, events[0].EventName())
		queues := events[0].AffectedQueues()
		require.Len(t, queues, 2)
		assert.True(t, queues[0].IsEqual(target))
		assert.True(t, queues[1].IsEqual(previous))
		payload := events[0].Payload().(serviceorder.EventPayload)
		assert.Equal(t, "EXECUTING", payload.PreviousStatus)
		assert.Equal(t, previous.String(), payload.PreviousTechnicianID)
	})

	t.Run("should discard the execution state of the abandoned run", func(t *testing.T) {
		o, _ := newOrder(t, 0)
		point, err := kernel.NewGeoPoint(-23.55, -46.63)
		require.NoError(t, err)
		_, err = o.ApplyStatus(serviceorder.EnRoute, "", &point, baseTime)
		require.NoError(t, err)
		_, err = o.ApplyStatus(serviceorder.Executing, "", &point, baseTime)
		require.NoError(t, err)
		_, err = o.ApplyStatus(serviceorder.Completed, "", nil, baseTime.Add(5*time.Minute))
		require.NoError(t, err)
		_, err = o.ApplyStatus(serviceorder.Executing, "", nil, baseTime.Add(6*time.Minute))
		require.NoError(t, err)
		require.NotNil(t, o.ExecutionDuration())

		_, err = o.TransferTo(kernel.NewUUID(), 0, baseTime.Add(7*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, serviceorder.Pending, o.Status())
		assert.Nil(t, o.ExecutionStartTime())
		assert.Nil(t, o.ExecutionDuration())
		assert.Nil(t, o.StartTravelLocation())
		assert.Nil(t, o.ExecutionLocation())
	})

	t.Run("should list one queue when transferring to the same technician", func(t *testing.T) {
		o, technicianID := newOrder(t, 0)

		_, err := o.TransferTo(technicianID, 1, baseTime)

		require.NoError(t, err)
		assert.Len(t, o.PullEvents()[0].AffectedQueues(), 1)
	})

	t.Run("should assign an unassigned order", func(t *testing.T) {
		o, err := serviceorder.NewServiceOrder(kernel.NewUUID(), validDetails(), nil, 0, baseTime)
		require.NoError(t, err)
		target := kernel.NewUUID()

		_, err = o.TransferTo(target, 0, baseTime)

		require.NoError(t, err)
		assert.True(t, o.TechnicianID().IsEqual(target))
	})

	t.Run("should reject an invalid target", func(t *testing.T) {
		o, technicianID := newOrder(t, 0)

		_, err := o.TransferTo(kernel.UUID{}, 1, baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, o.TechnicianID().IsEqual(technicianID))
	})

	t.Run("should reject a negative position", func(t *testing.T) {
		o, _ := newOrder(t, 0)

		_, err := o.TransferTo(kernel.NewUUID(), -1, baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestServiceOrder_MoveTo(t *testing.T) {
	t.Run("should move and record event", func(t *testing.T) {
		o, _ := newOrder(t, 3)

		require.NoError(t, o.MoveTo(0, baseTime))

		assert.Equal(t, 0, o.Position())
		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, serviceorder.EventRepositioned, events[0].EventName())
	})

	t.Run("should be a no-op for the same position", func(t *testing.T) {
		o, _ := newOrder(t, 3)

		require.NoError(t, o.MoveTo(3, baseTime))

		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject a negative position", func(t *testing.T) {
		o, _ := newOrder(t, 3)

		err := o.MoveTo(-1, baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 3, o.Position())
	})
}

func TestServiceOrder_MarkDeleted(t *testing.T) {
	o, technicianID := newOrder(t, 1)

	o.MarkDeleted(baseTime)

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, serviceorder.EventDeleted, events[0].EventName())
	assert.True(t, events[0].AffectedQueues()[0].IsEqual(technicianID))
	assert.Equal(t, baseTime, events[0].OccurredAt())
}

func TestServiceOrder_FullLifecycle(t *testing.T) {
	o, _ := newOrder(t, 0)
	travel, _ := kernel.NewGeoPoint(-23.56, -46.65)
	site, _ := kernel.NewGeoPoint(-23.57, -46.66)

	var history []*serviceorder.HistoryEntry
	steps := []struct {
		status   serviceorder.Status
		location *kernel.GeoPoint
		at       time.Duration
	}{
		{serviceorder.EnRoute, &travel, 0},
		{serviceorder.Executing, &site, 30 * time.Minute},
		{serviceorder.Completed, nil, 75 * time.Minute},
	}
	for _, step := range steps {
		entry, err := o.ApplyStatus(step.status, "", step.location, baseTime.Add(step.at))
		require.NoError(t, err)
		history = append(history, entry)
	}

	require.Len(t, history, 3)
	assert.Equal(t, serviceorder.Completed, o.Status())
	assert.Equal(t, 45, *o.ExecutionDuration())
	assert.Equal(t, baseTime.Add(30*time.Minute), *o.ExecutionStartTime())
	assert.NotNil(t, o.StartTravelLocation())
	assert.NotNil(t, o.ExecutionLocation())
	assert.Len(t, o.PullEvents(), 3)
}
