package picktask_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picktask"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTask(t *testing.T) *picktask.Task {
	t.Helper()
	task, err := picktask.NewTask(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"SKU-1001",
		"Wireless Mouse",
		"A-03-02",
		3,
	)
	require.NoError(t, err)
	return task
}

func TestNewTask(t *testing.T) {
	t.Run("creates pending task", func(t *testing.T) {
		task := testTask(t)

		assert.Equal(t, picktask.Pending, task.Status())
		assert.Equal(t, 3, task.RequiredQuantity())
		assert.Equal(t, 0, task.PickedQuantity())
		assert.Nil(t, task.Picker())
		assert.Nil(t, task.StartedAt())
		assert.Nil(t, task.CompletedAt())
		assert.NoError(t, task.Validate())
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		_, err := picktask.NewTask(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), "SKU-1", "Mouse", "A-01-01", 1)
		require.Error(t, err)

		_, err = picktask.NewTask(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", "Mouse", "A-01-01", 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = picktask.NewTask(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "SKU-1", "Mouse", "A-01-01", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("uninitialized task fails validation", func(t *testing.T) {
		var task picktask.Task
		assert.ErrorIs(t, task.Validate(), picktask.ErrTaskIsNotConstructed)
	})
}

func TestTask_Start(t *testing.T) {
	now := time.Now().UTC()
	picker := kernel.NewUUID()

	t.Run("pending task starts", func(t *testing.T) {
		task := testTask(t)

		require.NoError(t, task.Start(picker, now))

		assert.Equal(t, picktask.InProgress, task.Status())
		require.NotNil(t, task.Picker())
		assert.True(t, task.Picker().IsEqual(picker))
		require.NotNil(t, task.StartedAt())
		assert.Equal(t, now, *task.StartedAt())
	})

	t.Run("starting twice conflicts", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(picker, now))

		err := task.Start(kernel.NewUUID(), now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "InProgress")
	})

	t.Run("completed task cannot start", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(picker, now))
		require.NoError(t, task.Complete(now))

		err := task.Start(picker, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestTask_SetPickedQuantity(t *testing.T) {
	now := time.Now().UTC()

	t.Run("records partial progress", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))

		require.NoError(t, task.SetPickedQuantity(2))
		assert.Equal(t, 2, task.PickedQuantity())
		assert.Equal(t, picktask.InProgress, task.Status())
	})

	t.Run("full quantity does not complete implicitly", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))

		require.NoError(t, task.SetPickedQuantity(3))
		assert.Equal(t, picktask.InProgress, task.Status())
	})

	t.Run("rejects out-of-range quantity", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))

		err := task.SetPickedQuantity(4)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		err = task.SetPickedQuantity(-1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects update before start", func(t *testing.T) {
		task := testTask(t)

		err := task.SetPickedQuantity(1)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestTask_Complete(t *testing.T) {
	now := time.Now().UTC()

	t.Run("forces picked quantity to required", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))
		require.NoError(t, task.SetPickedQuantity(1))

		require.NoError(t, task.Complete(now))

		assert.Equal(t, picktask.Completed, task.Status())
		assert.Equal(t, task.RequiredQuantity(), task.PickedQuantity())
		require.NotNil(t, task.CompletedAt())
		assert.Equal(t, now, *task.CompletedAt())
	})

	t.Run("pending task can complete directly", func(t *testing.T) {
		task := testTask(t)

		require.NoError(t, task.Complete(now))
		assert.Equal(t, picktask.Completed, task.Status())
	})

	t.Run("double completion conflicts", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Complete(now))

		err := task.Complete(now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "already completed")
	})

	t.Run("skipped task must be reverted first", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Skip("bin empty", now))

		err := task.Complete(now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestTask_Skip(t *testing.T) {
	now := time.Now().UTC()

	t.Run("skips with reason", func(t *testing.T) {
		task := testTask(t)

		require.NoError(t, task.Skip("bin empty", now))

		assert.Equal(t, picktask.Skipped, task.Status())
		require.NotNil(t, task.SkipReason())
		assert.Equal(t, "bin empty", *task.SkipReason())
		require.NotNil(t, task.SkippedAt())
	})

	t.Run("in-progress task can be skipped", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))

		require.NoError(t, task.Skip("damaged stock", now))
		assert.Equal(t, picktask.Skipped, task.Status())
	})

	t.Run("reason is required", func(t *testing.T) {
		task := testTask(t)

		err := task.Skip("", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("completed task cannot be skipped", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Complete(now))

		err := task.Skip("bin empty", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestTask_RevertSkip(t *testing.T) {
	now := time.Now().UTC()

	t.Run("returns skipped task to pending with zeroed progress", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))
		require.NoError(t, task.SetPickedQuantity(2))
		require.NoError(t, task.Skip("bin empty", now))

		require.NoError(t, task.RevertSkip())

		assert.Equal(t, picktask.Pending, task.Status())
		assert.Equal(t, 0, task.PickedQuantity())
		assert.Nil(t, task.Picker())
		assert.Nil(t, task.StartedAt())
		assert.Nil(t, task.SkippedAt())
		assert.Nil(t, task.SkipReason())
	})

	t.Run("non-skipped task conflicts", func(t *testing.T) {
		task := testTask(t)

		err := task.RevertSkip()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestTask_ResetProgress(t *testing.T) {
	now := time.Now().UTC()

	t.Run("undoes a completed task", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))
		require.NoError(t, task.Complete(now))

		require.NoError(t, task.ResetProgress())

		assert.Equal(t, picktask.Pending, task.Status())
		assert.Equal(t, 0, task.PickedQuantity())
		assert.Nil(t, task.Picker())
		assert.Nil(t, task.StartedAt())
		assert.Nil(t, task.CompletedAt())
	})

	t.Run("undoes an in-progress task", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Start(kernel.NewUUID(), now))
		require.NoError(t, task.SetPickedQuantity(1))

		require.NoError(t, task.ResetProgress())
		assert.Equal(t, picktask.Pending, task.Status())
	})

	t.Run("pending task has nothing to undo", func(t *testing.T) {
		task := testTask(t)

		err := task.ResetProgress()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("skipped task has nothing to undo", func(t *testing.T) {
		task := testTask(t)
		require.NoError(t, task.Skip("bin empty", now))

		err := task.ResetProgress()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestRestoreTask(t *testing.T) {
	now := time.Now().UTC()
	picker := kernel.NewUUID()

	t.Run("restores in-progress task", func(t *testing.T) {
		task, err := picktask.RestoreTask(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"SKU-1001", "Wireless Mouse", "A-03-02",
			3, 2, picktask.InProgress,
			&picker, &now, nil, nil, nil,
		)
		require.NoError(t, err)

		assert.Equal(t, picktask.InProgress, task.Status())
		assert.Equal(t, 2, task.PickedQuantity())
		require.NotNil(t, task.Picker())
		assert.True(t, task.Picker().IsEqual(picker))
	})

	t.Run("rejects picked quantity over required", func(t *testing.T) {
		_, err := picktask.RestoreTask(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"SKU-1001", "Wireless Mouse", "A-03-02",
			3, 5, picktask.InProgress,
			&picker, &now, nil, nil, nil,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := picktask.RestoreTask(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"SKU-1001", "Wireless Mouse", "A-03-02",
			3, 0, picktask.Status(42),
			nil, nil, nil, nil, nil,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
