package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Picking,
		order.Picked,
		order.Packing,
		order.Packed,
		order.Shipped,
		order.Cancelled,
		order.Backorder,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses pass", func(t *testing.T) {
		for _, s := range allStatuses() {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown and out-of-range fail", func(t *testing.T) {
		assert.Error(t, order.Unknown.Validate())
		assert.Error(t, order.Status(42).Validate())
		assert.Error(t, order.Status(-1).Validate())
	})
}

func TestStatus_FromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.StatusFromString("picking")
		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	expected := map[order.Status]string{
		order.Pending:   "Pending",
		order.Picking:   "Picking",
		order.Picked:    "Picked",
		order.Packing:   "Packing",
		order.Packed:    "Packed",
		order.Shipped:   "Shipped",
		order.Cancelled: "Cancelled",
		order.Backorder: "Backorder",
	}
	for s, str := range expected {
		assert.Equal(t, str, s.String())
	}
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

// TestStatus_TransitionClosure verifies the complete transition table: every
// (from, to) pair outside the legal set fails with a conflict, and every pair
// inside it succeeds.
func TestStatus_TransitionClosure(t *testing.T) {
	legal := map[order.Status][]order.Status{
		order.Pending:   {order.Picking, order.Backorder},
		order.Picking:   {order.Picked},
		order.Picked:    {order.Packing},
		order.Packing:   {order.Packed},
		order.Packed:    {order.Shipped},
		order.Backorder: {order.Pending},
	}

	isLegal := func(from, to order.Status) bool {
		for _, allowed := range legal[from] {
			if allowed == to {
				return true
			}
		}
		return false
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			got, err := from.TransitionTo(to)
			if isLegal(from, to) {
				require.NoError(t, err, "%s -> %s should be legal", from, to)
				assert.Equal(t, to, got)
			} else {
				require.Error(t, err, "%s -> %s should be illegal", from, to)
				require.ErrorIs(t, err, errs.ErrConflict)
				assert.Contains(t, err.Error(), from.String())
				assert.Contains(t, err.Error(), to.String())
			}
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Shipped.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	for _, s := range []order.Status{
		order.Pending, order.Picking, order.Picked,
		order.Packing, order.Packed, order.Backorder,
	} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestStatus_ValidateCanHavePicker(t *testing.T) {
	t.Run("pending and backorder must not have a picker", func(t *testing.T) {
		require.NoError(t, order.Pending.ValidateCanHavePicker(false))
		require.NoError(t, order.Backorder.ValidateCanHavePicker(false))
		require.Error(t, order.Pending.ValidateCanHavePicker(true))
		require.Error(t, order.Backorder.ValidateCanHavePicker(true))
	})

	t.Run("picking through shipped require a picker", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Picking, order.Picked, order.Packing, order.Packed, order.Shipped,
		} {
			require.NoError(t, s.ValidateCanHavePicker(true), s.String())
			require.Error(t, s.ValidateCanHavePicker(false), s.String())
		}
	})

	t.Run("cancelled allows either", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHavePicker(true))
		require.NoError(t, order.Cancelled.ValidateCanHavePicker(false))
	})
}

func TestPriority(t *testing.T) {
	t.Run("ordering", func(t *testing.T) {
		assert.Less(t, order.PriorityLow, order.PriorityNormal)
		assert.Less(t, order.PriorityNormal, order.PriorityHigh)
		assert.Less(t, order.PriorityHigh, order.PriorityUrgent)
	})

	t.Run("validate", func(t *testing.T) {
		for _, p := range []order.Priority{
			order.PriorityLow, order.PriorityNormal, order.PriorityHigh, order.PriorityUrgent,
		} {
			assert.NoError(t, p.Validate())
		}
		assert.Error(t, order.PriorityUnknown.Validate())
		assert.Error(t, order.Priority(42).Validate())
	})

	t.Run("from string", func(t *testing.T) {
		p, err := order.PriorityFromString("Urgent")
		require.NoError(t, err)
		assert.Equal(t, order.PriorityUrgent, p)

		_, err = order.PriorityFromString("ASAP")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
