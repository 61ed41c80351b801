package serviceorder_test

import (
	"fmt"
	"testing"

	"fieldservice/internal/core/domain/model/serviceorder"
	"fieldservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(serviceorder.Unknown))
	assert.Equal(t, 1, int(serviceorder.Pending))
	assert.Equal(t, 6, int(serviceorder.Transferred))
	assert.Len(t, serviceorder.AllStatuses(), 6)
}

func TestStatus_String(t *testing.T) {
	tests := map[serviceorder.Status]string{
		serviceorder.Pending:     "PENDING",
		serviceorder.EnRoute:     "EN_ROUTE",
		serviceorder.Executing:   "EXECUTING",
		serviceorder.Completed:   "COMPLETED",
		serviceorder.Rescheduled: "RESCHEDULED",
		serviceorder.Transferred: "TRANSFERRED",
		serviceorder.Unknown:     "UNKNOWN",
		serviceorder.Status(42):  "UNKNOWN",
	}

	for status, expected := range tests {
		assert.Equal(t, expected, status.String())
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every wire name", func(t *testing.T) {
		for _, status := range serviceorder.AllStatuses() {
			parsed, err := serviceorder.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should ignore case and surrounding spaces", func(t *testing.T) {
		parsed, err := serviceorder.ParseStatus("  en_route ")

		require.NoError(t, err)
		assert.Equal(t, serviceorder.EnRoute, parsed)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "UNKNOWN", "DONE", "EN ROUTE"} {
			t.Run(fmt.Sprintf("name %q", name), func(t *testing.T) {
				parsed, err := serviceorder.ParseStatus(name)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Equal(t, serviceorder.Unknown, parsed)
			})
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range serviceorder.AllStatuses() {
		require.NoError(t, status.Validate(), status.String())
	}

	for _, status := range []serviceorder.Status{serviceorder.Unknown, -1, 7, 100} {
		err := status.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
	}
}

func TestStatus_IsDirectlyRequestable(t *testing.T) {
	assert.True(t, serviceorder.Pending.IsDirectlyRequestable())
	assert.True(t, serviceorder.EnRoute.IsDirectlyRequestable())
	assert.True(t, serviceorder.Executing.IsDirectlyRequestable())
	assert.True(t, serviceorder.Completed.IsDirectlyRequestable())
	assert.True(t, serviceorder.Rescheduled.IsDirectlyRequestable())
	assert.False(t, serviceorder.Transferred.IsDirectlyRequestable())
	assert.False(t, serviceorder.Unknown.IsDirectlyRequestable())
}

func TestStatus_ValidateTransition(t *testing.T) {
	requestable := []serviceorder.Status{
		serviceorder.Pending,
		serviceorder.EnRoute,
		serviceorder.Executing,
		serviceorder.Completed,
		serviceorder.Rescheduled,
	}

	t.Run("should allow every pair of requestable statuses", func(t *testing.T) {
		for _, from := range requestable {
			for _, to := range requestable {
				assert.NoError(t, from.ValidateTransition(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("should reject TRANSFERRED as a target", func(t *testing.T) {
		err := serviceorder.Executing.ValidateTransition(serviceorder.Transferred)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "only set by a transfer")
	})

	t.Run("should reject an unknown target", func(t *testing.T) {
		err := serviceorder.Pending.ValidateTransition(serviceorder.Status(99))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should deny transitions from a status with no table entry", func(t *testing.T) {
		err := serviceorder.Transferred.ValidateTransition(serviceorder.Pending)

		require.ErrorIs(t, err, errs.ErrConflictState)
		assert.Contains(t, err.Error(), "TRANSFERRED -> PENDING is not allowed")
	})
}

func TestStatus_StopsExecution(t *testing.T) {
	assert.True(t, serviceorder.Executing.StopsExecution(serviceorder.Completed))
	assert.True(t, serviceorder.Executing.StopsExecution(serviceorder.Rescheduled))
	assert.False(t, serviceorder.Executing.StopsExecution(serviceorder.Pending))
	assert.False(t, serviceorder.Executing.StopsExecution(serviceorder.Executing))
	assert.False(t, serviceorder.EnRoute.StopsExecution(serviceorder.Completed))
}
